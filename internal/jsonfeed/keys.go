package jsonfeed

// Document keys, as defined by the JSON Feed format.
const (
	keyAttachments       = "attachments"
	keyAuthor            = "author"
	keyAvatar            = "avatar"
	keyBannerImage       = "banner_image"
	keyContentHTML       = "content_html"
	keyContentText       = "content_text"
	keyDateModified      = "date_modified"
	keyDatePublished     = "date_published"
	keyDescription       = "description"
	keyDurationInSeconds = "duration_in_seconds"
	keyExpired           = "expired"
	keyExternalURL       = "external_url"
	keyFavicon           = "favicon"
	keyFeedURL           = "feed_url"
	keyHomePageURL       = "home_page_url"
	keyHubs              = "hubs"
	keyIcon              = "icon"
	keyID                = "id"
	keyImage             = "image"
	keyItems             = "items"
	keyMimeType          = "mime_type"
	keyName              = "name"
	keyNextURL           = "next_url"
	keySizeInBytes       = "size_in_bytes"
	keySummary           = "summary"
	keyTags              = "tags"
	keyTitle             = "title"
	keyType              = "type"
	keyURL               = "url"
	keyUserComment       = "user_comment"
	keyVersion           = "version"
)

// Entity names used to tag diagnostics and validation messages.
const (
	entityFeed       = "Feed"
	entityItem       = "Item"
	entityAuthor     = "Author"
	entityAttachment = "Attachment"
	entityHub        = "Hub"
	entityExtension  = "Extension"
)

// Version URLs published by jsonfeed.org.
const (
	Version1  = "https://jsonfeed.org/version/1"
	Version11 = "https://jsonfeed.org/version/1.1"
)

// DateFormat is the timestamp layout written for date fields. Parsing also
// accepts a literal "Z" offset.
const DateFormat = "2006-01-02T15:04:05-07:00"

const dateParseFormat = "2006-01-02T15:04:05Z07:00"

// ExtensionPrefix marks extension keys in a parent object.
const ExtensionPrefix = "_"

package media

import (
	"fmt"
	"mime"
	"path/filepath"

	"github.com/gotd/td/tg"
	"github.com/set-night/mediagrab/internal/domain"
)

// zeroChannelID is the marked id of channel 0.
const zeroChannelID = -1000000000000

// PeerID returns the marked id of a peer: users as is, basic chats negated,
// channels offset below zeroChannelID.
func PeerID(p tg.PeerClass) int64 {
	switch p := p.(type) {
	case *tg.PeerUser:
		return p.UserID
	case *tg.PeerChat:
		return -p.ChatID
	case *tg.PeerChannel:
		return zeroChannelID - p.ChannelID
	default:
		return 0
	}
}

// OwnerID is the sender of msg, or its chat when the sender is unknown.
func OwnerID(msg *tg.Message) int64 {
	if msg.FromID != nil {
		if id := PeerID(msg.FromID); id != 0 {
			return id
		}
	}
	return PeerID(msg.PeerID)
}

// Classify scans attributes in order. An animation settles the kind; a video
// is kept unless a later attribute is an animation.
func Classify(attrs []tg.DocumentAttributeClass) domain.MediaKind {
	kind := domain.MediaKindNone
	for _, attr := range attrs {
		switch attr.(type) {
		case *tg.DocumentAttributeAnimated:
			return domain.MediaKindGIF
		case *tg.DocumentAttributeVideo:
			kind = domain.MediaKindVideo
		}
	}
	return kind
}

// BaseName is "{owner}-{message}" with "-gif" or "-video" appended for those kinds.
func BaseName(ownerID int64, messageID int, kind domain.MediaKind) string {
	name := fmt.Sprintf("%d-%d", ownerID, messageID)
	if kind != domain.MediaKindNone {
		name += "-" + string(kind)
	}
	return name
}

// mimeExtensions covers the MIME types Telegram sends without a file name.
// The mime package answers from the host's tables, which differ between systems.
var mimeExtensions = map[string]string{
	"application/x-tgsticker": ".tgs",
	"audio/mpeg":              ".mp3",
	"audio/ogg":               ".ogg",
	"image/gif":               ".gif",
	"image/jpeg":              ".jpg",
	"image/png":               ".png",
	"image/webp":              ".webp",
	"video/mp4":               ".mp4",
	"video/quicktime":         ".mov",
	"video/webm":              ".webm",
}

// documentExtension prefers the original file name, then the MIME type.
func documentExtension(doc *tg.Document) string {
	for _, attr := range doc.Attributes {
		if f, ok := attr.(*tg.DocumentAttributeFilename); ok {
			if ext := filepath.Ext(f.FileName); ext != "" {
				return ext
			}
		}
	}
	if doc.MimeType == "" {
		return ""
	}
	if ext, ok := mimeExtensions[doc.MimeType]; ok {
		return ext
	}
	exts, err := mime.ExtensionsByType(doc.MimeType)
	if err != nil || len(exts) == 0 {
		return ""
	}
	return exts[0]
}

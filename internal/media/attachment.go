package media

import (
	"fmt"

	"github.com/gotd/td/tg"
	"github.com/set-night/mediagrab/internal/config"
	"github.com/set-night/mediagrab/internal/domain"
)

// attachment is the downloadable part of a message's media.
type attachment struct {
	location tg.InputFileLocationClass
	kind     domain.MediaKind
	ext      string
}

func attachmentOf(media tg.MessageMediaClass) (attachment, error) {
	switch m := media.(type) {
	case *tg.MessageMediaDocument:
		doc, ok := m.Document.(*tg.Document)
		if !ok {
			return attachment{}, fmt.Errorf("%w: empty document", domain.ErrNoDownloadableFile)
		}
		return attachment{
			location: &tg.InputDocumentFileLocation{
				ID:            doc.ID,
				AccessHash:    doc.AccessHash,
				FileReference: doc.FileReference,
			},
			kind: Classify(doc.Attributes),
			ext:  documentExtension(doc),
		}, nil

	case *tg.MessageMediaPhoto:
		photo, ok := m.Photo.(*tg.Photo)
		if !ok {
			return attachment{}, fmt.Errorf("%w: empty photo", domain.ErrNoDownloadableFile)
		}
		thumb := largestPhotoSize(photo.Sizes)
		if thumb == "" {
			return attachment{}, fmt.Errorf("%w: photo has no sizes", domain.ErrNoDownloadableFile)
		}
		return attachment{
			location: &tg.InputPhotoFileLocation{
				ID:            photo.ID,
				AccessHash:    photo.AccessHash,
				FileReference: photo.FileReference,
				ThumbSize:     thumb,
			},
			ext: config.PhotoExtension,
		}, nil

	default:
		return attachment{}, fmt.Errorf("%w: %T", domain.ErrNoDownloadableFile, media)
	}
}

// largestPhotoSize returns the type of the biggest full-quality size.
// Cached and stripped thumbnails are ignored.
func largestPhotoSize(sizes []tg.PhotoSizeClass) string {
	var (
		best string
		area int
	)
	for _, size := range sizes {
		var typ string
		var w, h int
		switch s := size.(type) {
		case *tg.PhotoSize:
			typ, w, h = s.Type, s.W, s.H
		case *tg.PhotoSizeProgressive:
			typ, w, h = s.Type, s.W, s.H
		default:
			continue
		}
		if best == "" || w*h > area {
			best, area = typ, w*h
		}
	}
	return best
}

package media

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gotd/td/tg"
	"github.com/set-night/mediagrab/internal/domain"
)

type fakeDownloader struct {
	err   error
	paths []string
	locs  []tg.InputFileLocationClass
}

func (d *fakeDownloader) Download(_ context.Context, loc tg.InputFileLocationClass, path string) error {
	d.paths = append(d.paths, path)
	d.locs = append(d.locs, loc)
	return d.err
}

type fakeJournal struct {
	err     error
	records []domain.Download
}

func (j *fakeJournal) Record(_ context.Context, d domain.Download) error {
	j.records = append(j.records, d)
	return j.err
}

type fakeNotifier struct{ paths []string }

func (n *fakeNotifier) NotifyDownload(_ context.Context, d domain.Download) {
	n.paths = append(n.paths, d.Path)
}

func videoMessage() *tg.Message {
	return &tg.Message{
		ID:     222,
		FromID: &tg.PeerUser{UserID: 111},
		PeerID: &tg.PeerChat{ChatID: 5},
		Media: &tg.MessageMediaDocument{
			Document: &tg.Document{
				ID:            9,
				AccessHash:    10,
				FileReference: []byte{1, 2},
				MimeType:      "video/mp4",
				Attributes: []tg.DocumentAttributeClass{
					&tg.DocumentAttributeVideo{W: 640, H: 480},
					&tg.DocumentAttributeFilename{FileName: "clip.mp4"},
				},
			},
		},
	}
}

func TestHandleSkipsMessagesWithoutMedia(t *testing.T) {
	dl := &fakeDownloader{}
	l := New(Deps{Dir: "downloads", Downloader: dl})

	if err := l.Handle(t.Context(), &tg.Message{ID: 1, PeerID: &tg.PeerUser{UserID: 2}}); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if len(dl.paths) != 0 {
		t.Fatalf("expected no downloads, got %v", dl.paths)
	}
}

func TestHandleSkipsMediaWithoutFile(t *testing.T) {
	dl := &fakeDownloader{}
	l := New(Deps{Dir: "downloads", Downloader: dl})

	msg := &tg.Message{ID: 1, PeerID: &tg.PeerUser{UserID: 2}, Media: &tg.MessageMediaGeo{}}
	if err := l.Handle(t.Context(), msg); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if len(dl.paths) != 0 {
		t.Fatalf("expected no downloads, got %v", dl.paths)
	}
}

func TestHandleDownloadsDocument(t *testing.T) {
	dir := t.TempDir()
	dl := &fakeDownloader{}
	journal := &fakeJournal{}
	notifier := &fakeNotifier{}
	l := New(Deps{Dir: dir, Downloader: dl, Journal: journal, Notifier: notifier})

	if err := l.Handle(t.Context(), videoMessage()); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	wantPath := filepath.Join(dir, "111-222-video.mp4")
	if diff := cmp.Diff([]string{wantPath}, dl.paths); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
	loc, ok := dl.locs[0].(*tg.InputDocumentFileLocation)
	if !ok {
		t.Fatalf("expected document location, got %T", dl.locs[0])
	}
	if loc.ID != 9 || loc.AccessHash != 10 || string(loc.FileReference) != "\x01\x02" {
		t.Fatalf("unexpected location %+v", loc)
	}

	if len(journal.records) != 1 {
		t.Fatalf("expected one journal record, got %d", len(journal.records))
	}
	rec := journal.records[0]
	if rec.OwnerID != 111 || rec.ChatID != -5 || rec.MessageID != 222 || rec.Kind != domain.MediaKindVideo {
		t.Fatalf("unexpected record %+v", rec)
	}
	if diff := cmp.Diff([]string{wantPath}, notifier.paths); diff != "" {
		t.Fatalf("notified paths mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleNamesDocumentWithoutFileName(t *testing.T) {
	dl := &fakeDownloader{}
	l := New(Deps{Dir: "downloads", Downloader: dl})

	msg := videoMessage()
	doc := msg.Media.(*tg.MessageMediaDocument).Document.(*tg.Document)
	doc.Attributes = []tg.DocumentAttributeClass{&tg.DocumentAttributeVideo{W: 640, H: 480}}

	if err := l.Handle(t.Context(), msg); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	want := filepath.Join("downloads", "111-222-video.mp4")
	if diff := cmp.Diff([]string{want}, dl.paths); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleUsesChatForAnonymousPosts(t *testing.T) {
	dl := &fakeDownloader{}
	l := New(Deps{Dir: "downloads", Downloader: dl})

	msg := &tg.Message{
		ID:     7,
		PeerID: &tg.PeerChannel{ChannelID: 42},
		Media: &tg.MessageMediaPhoto{
			Photo: &tg.Photo{
				ID:    1,
				Sizes: []tg.PhotoSizeClass{&tg.PhotoSize{Type: "x", W: 800, H: 600}},
			},
		},
	}
	if err := l.Handle(t.Context(), msg); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	want := filepath.Join("downloads", "-1000000000042-7.jpg")
	if diff := cmp.Diff([]string{want}, dl.paths); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleReturnsDownloadError(t *testing.T) {
	dl := &fakeDownloader{err: errors.New("FILE_REFERENCE_EXPIRED")}
	journal := &fakeJournal{}
	l := New(Deps{Dir: "downloads", Downloader: dl, Journal: journal})

	if err := l.Handle(t.Context(), videoMessage()); err == nil {
		t.Fatal("expected download error")
	}
	if len(journal.records) != 0 {
		t.Fatal("expected failed download not to be recorded")
	}

	// The next event is handled independently.
	dl.err = nil
	if err := l.Handle(t.Context(), videoMessage()); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if len(dl.paths) != 2 {
		t.Fatalf("expected two download attempts, got %d", len(dl.paths))
	}
}

func TestHandleIgnoresJournalError(t *testing.T) {
	dl := &fakeDownloader{}
	journal := &fakeJournal{err: errors.New("connection refused")}
	notifier := &fakeNotifier{}
	l := New(Deps{Dir: "downloads", Downloader: dl, Journal: journal, Notifier: notifier})

	if err := l.Handle(t.Context(), videoMessage()); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if len(notifier.paths) != 1 {
		t.Fatal("expected notification despite journal error")
	}
}

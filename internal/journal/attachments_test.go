package journal

import (
	"reflect"
	"testing"

	"caisse-backend/internal/models"
)

func mirroredLine(invoiceID uint) *LineView {
	return &LineView{
		FromInvoice:   true,
		InvoiceID:     &invoiceID,
		InvoiceOrigin: models.OriginDirect,
		Photos:        []string{},
	}
}

func TestResolveAttachmentsTempWinsForNativeLines(t *testing.T) {
	line := &LineView{Photos: []string{"client.jpg"}}
	persisted := &PersistedPhotos{Photos: []string{"stored.jpg"}}

	ResolveAttachments(line, []string{"fresh.jpg"}, true, persisted)

	if !reflect.DeepEqual(line.Photos, []string{"fresh.jpg"}) {
		t.Errorf("temp upload should win: got %v", line.Photos)
	}
}

func TestResolveAttachmentsEmptyTempClearsPhotos(t *testing.T) {
	// The user removed every photo: the empty temp set is still authoritative.
	line := &LineView{Photos: []string{"client.jpg"}}
	persisted := &PersistedPhotos{Photos: []string{"stored.jpg"}}

	ResolveAttachments(line, []string{}, true, persisted)

	if len(line.Photos) != 0 {
		t.Errorf("empty temp set should clear photos: got %v", line.Photos)
	}
}

func TestResolveAttachmentsRestoresPersistedWhenPayloadOmits(t *testing.T) {
	line := &LineView{Photos: []string{}}
	persisted := &PersistedPhotos{
		Photos:     []string{"stored.jpg"},
		CheckFront: "recto.jpg",
		CheckBack:  "verso.jpg",
	}

	ResolveAttachments(line, nil, false, persisted)

	if !reflect.DeepEqual(line.Photos, []string{"stored.jpg"}) {
		t.Errorf("persisted photos not restored: got %v", line.Photos)
	}
	if line.PhotoCheckFront != "recto.jpg" || line.PhotoCheckBack != "verso.jpg" {
		t.Errorf("check images not restored: %q / %q", line.PhotoCheckFront, line.PhotoCheckBack)
	}
}

func TestResolveAttachmentsClientPhotosStand(t *testing.T) {
	line := &LineView{Photos: []string{"client.jpg"}}
	persisted := &PersistedPhotos{Photos: []string{"stored.jpg"}}

	ResolveAttachments(line, nil, false, persisted)

	if !reflect.DeepEqual(line.Photos, []string{"client.jpg"}) {
		t.Errorf("client array should stand when no temp exists: got %v", line.Photos)
	}
}

func TestResolveAttachmentsMirroredIgnoresTemp(t *testing.T) {
	line := mirroredLine(12)
	line.Photos = []string{"client.jpg"}

	ResolveAttachments(line, []string{"fresh.jpg"}, true, nil)

	if !reflect.DeepEqual(line.Photos, []string{"client.jpg"}) {
		t.Errorf("mirrored lines must not consume temp uploads: got %v", line.Photos)
	}
}

func TestResolveAttachmentsMirroredKeepsCheckImages(t *testing.T) {
	// An invoice holds check images; the save payload re-sends the line with
	// those fields blank. They must survive the merge.
	line := mirroredLine(12)
	line.Photos = []string{"kept.jpg"}
	persisted := &PersistedPhotos{
		Photos:     []string{"stored.jpg"},
		CheckFront: "recto.jpg",
		CheckBack:  "verso.jpg",
	}

	ResolveAttachments(line, nil, false, persisted)

	if !reflect.DeepEqual(line.Photos, []string{"kept.jpg"}) {
		t.Errorf("non-empty client photos should stand: got %v", line.Photos)
	}
	if line.PhotoCheckFront != "recto.jpg" || line.PhotoCheckBack != "verso.jpg" {
		t.Errorf("check images lost on mirrored line: %q / %q", line.PhotoCheckFront, line.PhotoCheckBack)
	}
}

func TestResolveAttachmentsMirroredRestoresEmptyPhotoSet(t *testing.T) {
	line := mirroredLine(12)
	persisted := &PersistedPhotos{Photos: []string{"stored.jpg"}}

	ResolveAttachments(line, nil, false, persisted)

	if !reflect.DeepEqual(line.Photos, []string{"stored.jpg"}) {
		t.Errorf("mirrored line lost its persisted photos: got %v", line.Photos)
	}
}

func TestResolveAttachmentsNeverLeavesNilPhotos(t *testing.T) {
	line := &LineView{}
	ResolveAttachments(line, nil, false, nil)
	if line.Photos == nil {
		t.Error("photos must encode as [], not null")
	}
}

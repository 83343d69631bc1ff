package journal

// Attachment reconciliation: for each line of a save payload, decide which
// photo set is authoritative among the fresh upload, the previously persisted
// state and the client-submitted array.

// PersistedPhotos: the attachment state already in storage for a line, read
// before the day's daily_sheet invoices are deleted for re-promotion.
type PersistedPhotos struct {
	Photos     []string
	CheckFront string
	CheckBack  string
}

// ResolveAttachments fixes line's attachment fields in place.
//
// Priority:
//  1. a fresh temp upload for (category, line_number) wins outright, even
//     when it is an empty set (the user removed every photo);
//  2. otherwise, if the line arrived with zero photos, the previously
//     persisted set is restored; an omitted array must not erase stored
//     images;
//  3. otherwise the client-submitted array stands.
//
// A mirrored line never consumes temp uploads (its photos are managed on the
// invoicing page) and never loses persisted check front/back images the
// payload omitted.
func ResolveAttachments(line *LineView, temp []string, tempPresent bool, persisted *PersistedPhotos) {
	switch line.Source().Kind {
	case SourceNative:
		if tempPresent {
			line.Photos = temp
			return
		}
		if persisted != nil && len(line.Photos) == 0 {
			line.Photos = persisted.Photos
			if line.PhotoCheckFront == "" {
				line.PhotoCheckFront = persisted.CheckFront
			}
			if line.PhotoCheckBack == "" {
				line.PhotoCheckBack = persisted.CheckBack
			}
		}
	case SourceMirrored:
		if persisted != nil {
			if len(line.Photos) == 0 {
				line.Photos = persisted.Photos
			}
			if line.PhotoCheckFront == "" {
				line.PhotoCheckFront = persisted.CheckFront
			}
			if line.PhotoCheckBack == "" {
				line.PhotoCheckBack = persisted.CheckBack
			}
		}
	}
	if line.Photos == nil {
		line.Photos = []string{}
	}
}

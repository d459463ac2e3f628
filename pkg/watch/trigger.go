package watch

// Trigger records why a rebuild was scheduled. A debounce window can absorb
// several causes; Merge folds them into a single value so one published
// snapshot describes everything that happened since the previous one.
type Trigger int

const (
	// TriggerNone means no rebuild is pending.
	TriggerNone Trigger = iota

	// TriggerStartup is the seed trigger every watcher begins with, so a
	// snapshot is published shortly after spawn even in a quiet workspace.
	TriggerStartup

	// TriggerFilesChanged means the poll loop observed a fingerprint change.
	TriggerFilesChanged

	// TriggerExternal means a caller signalled activity through Handle.Notify.
	TriggerExternal

	// TriggerExternalAndFilesChanged combines the two real causes when both
	// land inside the same debounce window.
	TriggerExternalAndFilesChanged
)

// String returns the stable label used in logs and published updates.
func (t Trigger) String() string {
	switch t {
	case TriggerStartup:
		return "startup"
	case TriggerFilesChanged:
		return "files_changed"
	case TriggerExternal:
		return "external"
	case TriggerExternalAndFilesChanged:
		return "external+files_changed"
	default:
		return "none"
	}
}

// Merge folds an incoming trigger into the currently pending one. Startup is
// absorbed by any real cause, the two real causes combine, and the combined
// value absorbs everything else.
func Merge(existing, incoming Trigger) Trigger {
	switch {
	case incoming == TriggerNone:
		return existing
	case existing == TriggerNone, existing == TriggerStartup:
		return incoming
	case existing == TriggerExternalAndFilesChanged, incoming == TriggerExternalAndFilesChanged:
		return TriggerExternalAndFilesChanged
	case existing == TriggerFilesChanged && incoming == TriggerExternal,
		existing == TriggerExternal && incoming == TriggerFilesChanged:
		return TriggerExternalAndFilesChanged
	case incoming == TriggerStartup:
		return existing
	default:
		return incoming
	}
}

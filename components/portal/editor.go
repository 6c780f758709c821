package portal

import (
	"context"
	"errors"
	"sync"

	"github.com/dentalexperts/go-portal/pkg/apiclient"
	"github.com/dentalexperts/go-portal/pkg/logging"
	"github.com/google/uuid"
)

var (
	ErrEditInProgress = errors.New("portal: edit session already active for record")
	ErrNoEditSession  = errors.New("portal: no active edit session for record")
	ErrEditSaving     = errors.New("portal: edit session is saving")
)

// EditState tracks where a record sits in its edit lifecycle.
type EditState string

const (
	EditDisplay EditState = "display"
	EditEditing EditState = "editing"
	EditSaving  EditState = "saving"
)

// CommitFunc persists the gathered field values. A staged image is nil
// when the edit never touched the image field.
type CommitFunc func(ctx context.Context, values map[string]string, image *apiclient.FileUpload) (apiclient.Envelope, error)

// EditSession is a snapshot of one record's active edit.
type EditSession struct {
	ID        string
	RecordKey string
	State     EditState
	Originals map[string]string
	Values    map[string]string
}

// SaveResult reports how a save ended. Values holds whatever the caller
// should render afterwards: the optimistic values on success, the
// originals when the save rolled back.
type SaveResult struct {
	Envelope   apiclient.Envelope
	Values     map[string]string
	RolledBack bool
}

type editSession struct {
	id          string
	state       EditState
	originals   map[string]string
	values      map[string]string
	stagedImage *apiclient.FileUpload
}

// Editor owns the per-record edit state machines. Beginning an edit
// captures the current values; Cancel restores them without network
// traffic; Save issues exactly one commit and, on failure, restores the
// originals unless the keep-on-failure option is set.
type Editor struct {
	mu            sync.Mutex
	sessions      map[string]*editSession
	keepOnFailure bool
	telemetry     Telemetry
	logger        *logging.Logger
}

// EditorOption customizes an Editor.
type EditorOption func(*Editor)

// WithKeepOnFailure keeps the optimistic values in place when a save
// fails instead of restoring the originals.
func WithKeepOnFailure() EditorOption {
	return func(e *Editor) { e.keepOnFailure = true }
}

func WithEditorTelemetry(t Telemetry) EditorOption {
	return func(e *Editor) { e.telemetry = t }
}

func WithEditorLogger(l *logging.Logger) EditorOption {
	return func(e *Editor) { e.logger = l }
}

func NewEditor(opts ...EditorOption) *Editor {
	e := &Editor{sessions: map[string]*editSession{}}
	for _, opt := range opts {
		opt(e)
	}
	e.telemetry = normalizeTelemetry(e.telemetry)
	if e.logger == nil {
		e.logger = logging.Default()
	}
	e.logger = e.logger.With("component", "editor")
	return e
}

// Begin opens an edit session for a record, capturing the current field
// values as the rollback point. A second Begin for the same record while
// a session is active fails.
func (e *Editor) Begin(ctx context.Context, recordKey string, fields map[string]string) (EditSession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, active := e.sessions[recordKey]; active {
		return EditSession{}, ErrEditInProgress
	}
	session := &editSession{
		id:        uuid.NewString(),
		state:     EditEditing,
		originals: copyValues(fields),
		values:    copyValues(fields),
	}
	e.sessions[recordKey] = session
	e.telemetry.Record(ctx, "portal.edit.begin", map[string]any{
		"record": recordKey,
		"id":     session.id,
	})
	return e.snapshotLocked(recordKey, session), nil
}

// Session returns a snapshot of the active edit for a record, if any.
func (e *Editor) Session(recordKey string) (EditSession, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, ok := e.sessions[recordKey]
	if !ok {
		return EditSession{}, false
	}
	return e.snapshotLocked(recordKey, session), true
}

// SetField stages a value. Staged values are not persisted until Save.
func (e *Editor) SetField(recordKey, field, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, ok := e.sessions[recordKey]
	if !ok {
		return ErrNoEditSession
	}
	if session.state == EditSaving {
		return ErrEditSaving
	}
	session.values[field] = value
	return nil
}

// StageImage stages an image for preview. The upload reaches the backend
// only when Save commits.
func (e *Editor) StageImage(recordKey string, upload apiclient.FileUpload) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, ok := e.sessions[recordKey]
	if !ok {
		return ErrNoEditSession
	}
	if session.state == EditSaving {
		return ErrEditSaving
	}
	session.stagedImage = &upload
	return nil
}

// StagedImage exposes the staged image for local preview.
func (e *Editor) StagedImage(recordKey string) (apiclient.FileUpload, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, ok := e.sessions[recordKey]
	if !ok || session.stagedImage == nil {
		return apiclient.FileUpload{}, false
	}
	return *session.stagedImage, true
}

// Cancel closes the session and returns the originals so the caller can
// restore the display. No network call is made.
func (e *Editor) Cancel(ctx context.Context, recordKey string) (map[string]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, ok := e.sessions[recordKey]
	if !ok {
		return nil, ErrNoEditSession
	}
	if session.state == EditSaving {
		return nil, ErrEditSaving
	}
	delete(e.sessions, recordKey)
	e.telemetry.Record(ctx, "portal.edit.cancel", map[string]any{
		"record": recordKey,
		"id":     session.id,
	})
	return copyValues(session.originals), nil
}

// Save gathers the staged values, applies them optimistically and issues
// exactly one commit. Success ends the session with the optimistic
// values in place. Failure restores the originals and surfaces the
// collaborator message, unless the editor keeps optimistic values on
// failure.
func (e *Editor) Save(ctx context.Context, recordKey string, commit CommitFunc) (SaveResult, error) {
	e.mu.Lock()
	session, ok := e.sessions[recordKey]
	if !ok {
		e.mu.Unlock()
		return SaveResult{}, ErrNoEditSession
	}
	if session.state == EditSaving {
		e.mu.Unlock()
		return SaveResult{}, ErrEditSaving
	}
	session.state = EditSaving
	optimistic := copyValues(session.values)
	originals := copyValues(session.originals)
	image := session.stagedImage
	e.mu.Unlock()

	env, err := commit(ctx, copyValues(optimistic), image)

	e.mu.Lock()
	delete(e.sessions, recordKey)
	e.mu.Unlock()

	result := SaveResult{Envelope: env, Values: optimistic}
	if err == nil && env.OK() {
		e.telemetry.Record(ctx, "portal.edit.save", map[string]any{
			"record": recordKey,
			"id":     session.id,
		})
		return result, nil
	}

	if !e.keepOnFailure {
		result.Values = originals
		result.RolledBack = true
		e.telemetry.Record(ctx, "portal.edit.rollback", map[string]any{
			"record": recordKey,
			"id":     session.id,
		})
	}
	if err != nil {
		e.logger.Error("edit commit failed", "record", recordKey, "error", err)
		return result, err
	}
	return result, nil
}

func (e *Editor) snapshotLocked(recordKey string, session *editSession) EditSession {
	return EditSession{
		ID:        session.id,
		RecordKey: recordKey,
		State:     session.state,
		Originals: copyValues(session.originals),
		Values:    copyValues(session.values),
	}
}

func copyValues(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

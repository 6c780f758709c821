package portal

import (
	"context"
	"errors"
	"testing"

	"github.com/dentalexperts/go-portal/pkg/apiclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func successEnvelope() apiclient.Envelope {
	return apiclient.Envelope{Status: "success", Message: "Profile updated"}
}

func failureEnvelope() apiclient.Envelope {
	return apiclient.Envelope{Status: "error", Message: "Update failed"}
}

func TestBeginCapturesOriginals(t *testing.T) {
	editor := NewEditor()
	session, err := editor.Begin(context.Background(), "profile:ana@example.com", map[string]string{
		"name":  "Ana",
		"email": "ana@example.com",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, EditEditing, session.State)
	assert.Equal(t, "Ana", session.Originals["name"])
}

func TestBeginTwiceForSameRecordFails(t *testing.T) {
	editor := NewEditor()
	_, err := editor.Begin(context.Background(), "rec", map[string]string{"name": "Ana"})
	require.NoError(t, err)

	_, err = editor.Begin(context.Background(), "rec", map[string]string{"name": "Ana"})
	require.ErrorIs(t, err, ErrEditInProgress)

	// A different record is independent.
	_, err = editor.Begin(context.Background(), "other", map[string]string{"name": "Bo"})
	require.NoError(t, err)
}

func TestCancelRestoresOriginalsWithoutNetwork(t *testing.T) {
	editor := NewEditor()
	_, err := editor.Begin(context.Background(), "rec", map[string]string{"name": "Ana"})
	require.NoError(t, err)
	require.NoError(t, editor.SetField("rec", "name", "Anabel"))

	originals, err := editor.Cancel(context.Background(), "rec")
	require.NoError(t, err)
	assert.Equal(t, "Ana", originals["name"])

	_, active := editor.Session("rec")
	assert.False(t, active)
}

func TestSaveSuccessKeepsOptimisticValues(t *testing.T) {
	editor := NewEditor()
	_, err := editor.Begin(context.Background(), "rec", map[string]string{"name": "Ana"})
	require.NoError(t, err)
	require.NoError(t, editor.SetField("rec", "name", "Anabel"))

	commits := 0
	result, err := editor.Save(context.Background(), "rec", func(ctx context.Context, values map[string]string, image *apiclient.FileUpload) (apiclient.Envelope, error) {
		commits++
		assert.Equal(t, "Anabel", values["name"])
		assert.Nil(t, image)
		return successEnvelope(), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, commits)
	assert.False(t, result.RolledBack)
	assert.Equal(t, "Anabel", result.Values["name"])

	_, active := editor.Session("rec")
	assert.False(t, active)
}

func TestSaveFailureRollsBackByDefault(t *testing.T) {
	editor := NewEditor()
	_, err := editor.Begin(context.Background(), "rec", map[string]string{"name": "Ana"})
	require.NoError(t, err)
	require.NoError(t, editor.SetField("rec", "name", "Anabel"))

	result, err := editor.Save(context.Background(), "rec", func(context.Context, map[string]string, *apiclient.FileUpload) (apiclient.Envelope, error) {
		return failureEnvelope(), nil
	})
	require.NoError(t, err)
	assert.True(t, result.RolledBack)
	assert.Equal(t, "Ana", result.Values["name"])
	assert.Equal(t, "Update failed", result.Envelope.Message)
}

func TestSaveTransportErrorRollsBack(t *testing.T) {
	editor := NewEditor()
	_, err := editor.Begin(context.Background(), "rec", map[string]string{"name": "Ana"})
	require.NoError(t, err)
	require.NoError(t, editor.SetField("rec", "name", "Anabel"))

	wantErr := errors.New("connection refused")
	result, err := editor.Save(context.Background(), "rec", func(context.Context, map[string]string, *apiclient.FileUpload) (apiclient.Envelope, error) {
		return apiclient.Envelope{}, wantErr
	})
	require.ErrorIs(t, err, wantErr)
	assert.True(t, result.RolledBack)
	assert.Equal(t, "Ana", result.Values["name"])
}

func TestSaveFailureKeepsOptimisticValuesWithOption(t *testing.T) {
	editor := NewEditor(WithKeepOnFailure())
	_, err := editor.Begin(context.Background(), "rec", map[string]string{"name": "Ana"})
	require.NoError(t, err)
	require.NoError(t, editor.SetField("rec", "name", "Anabel"))

	result, err := editor.Save(context.Background(), "rec", func(context.Context, map[string]string, *apiclient.FileUpload) (apiclient.Envelope, error) {
		return failureEnvelope(), nil
	})
	require.NoError(t, err)
	assert.False(t, result.RolledBack)
	assert.Equal(t, "Anabel", result.Values["name"])
}

func TestStagedImagePersistsOnlyOnSave(t *testing.T) {
	editor := NewEditor()
	_, err := editor.Begin(context.Background(), "rec", map[string]string{"name": "Ana"})
	require.NoError(t, err)

	upload := apiclient.FileUpload{FieldName: "profilePic", FileName: "ana.png", Content: []byte{0x89}}
	require.NoError(t, editor.StageImage("rec", upload))

	preview, ok := editor.StagedImage("rec")
	require.True(t, ok)
	assert.Equal(t, "ana.png", preview.FileName)

	var committed *apiclient.FileUpload
	_, err = editor.Save(context.Background(), "rec", func(ctx context.Context, values map[string]string, image *apiclient.FileUpload) (apiclient.Envelope, error) {
		committed = image
		return successEnvelope(), nil
	})
	require.NoError(t, err)
	require.NotNil(t, committed)
	assert.Equal(t, "ana.png", committed.FileName)
}

func TestOperationsWithoutSessionFail(t *testing.T) {
	editor := NewEditor()
	assert.ErrorIs(t, editor.SetField("rec", "name", "x"), ErrNoEditSession)
	_, err := editor.Cancel(context.Background(), "rec")
	assert.ErrorIs(t, err, ErrNoEditSession)
	_, err = editor.Save(context.Background(), "rec", nil)
	assert.ErrorIs(t, err, ErrNoEditSession)
}

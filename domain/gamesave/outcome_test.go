package gamesave_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/game-save-demo/domain/gamesave"
)

func TestTranslate_AllStatuses(t *testing.T) {
	tests := []struct {
		status gamesave.Status
		want   gamesave.Outcome
	}{
		{gamesave.StatusOK, gamesave.OutcomeOK},
		{gamesave.StatusAbort, gamesave.OutcomeAborted},
		{gamesave.StatusInvalidContainerName, gamesave.OutcomeInvalidContainerName},
		{gamesave.StatusNoAccess, gamesave.OutcomeNoAccess},
		{gamesave.StatusOutOfLocalStorage, gamesave.OutcomeOutOfLocalStorage},
		{gamesave.StatusUserCanceled, gamesave.OutcomeUserCanceled},
		{gamesave.StatusUpdateTooBig, gamesave.OutcomeUpdateTooBig},
		{gamesave.StatusQuotaExceeded, gamesave.OutcomeQuotaExceeded},
		{gamesave.StatusProvidedBufferTooSmall, gamesave.OutcomeProvidedBufferTooSmall},
		{gamesave.StatusBlobNotFound, gamesave.OutcomeBlobNotFound},
		{gamesave.StatusNoAccountInfo, gamesave.OutcomeNoAccountInfo},
		{gamesave.StatusContainerNotInSync, gamesave.OutcomeContainerNotInSync},
		{gamesave.StatusContainerSyncFailed, gamesave.OutcomeContainerSyncFailed},
		{gamesave.StatusUserHasNoAccountInfo, gamesave.OutcomeUserHasNoAccountInfo},
		{gamesave.StatusObjectExpired, gamesave.OutcomeObjectExpired},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			got, ok := gamesave.Translate(tt.status)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTranslate_Unmapped(t *testing.T) {
	_, ok := gamesave.Translate(gamesave.Status(12345))
	assert.False(t, ok)
}

func TestOutcome_TextRoundTrip(t *testing.T) {
	for o := gamesave.OutcomeOK; o <= gamesave.OutcomeNoAccountInfo; o++ {
		text, err := o.MarshalText()
		require.NoError(t, err)

		var back gamesave.Outcome
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, o, back)
	}

	var o gamesave.Outcome
	assert.Error(t, o.UnmarshalText([]byte("bogus")))
	_, err := gamesave.Outcome(200).MarshalText()
	assert.Error(t, err)
}

func TestOutcome_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Outcome gamesave.Outcome `json:"outcome"`
	}{gamesave.OutcomeUpdateTooBig})
	require.NoError(t, err)
	assert.JSONEq(t, `{"outcome":"update_too_big"}`, string(data))
}

func TestOutcome_HTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusOK, gamesave.OutcomeOK.HTTPStatus())
	assert.Equal(t, http.StatusBadRequest, gamesave.OutcomeInvalidContainerName.HTTPStatus())
	assert.Equal(t, http.StatusForbidden, gamesave.OutcomeNoAccess.HTTPStatus())
	assert.Equal(t, http.StatusRequestEntityTooLarge, gamesave.OutcomeUpdateTooBig.HTTPStatus())
	assert.Equal(t, http.StatusNotFound, gamesave.OutcomeBlobNotFound.HTTPStatus())
}

func TestOutcome_Err(t *testing.T) {
	assert.NoError(t, gamesave.OutcomeOK.Err())

	err := gamesave.OutcomeQuotaExceeded.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, gamesave.OutcomeQuotaExceeded.Err())
	assert.NotErrorIs(t, err, gamesave.OutcomeNoAccess.Err())
	assert.Equal(t, gamesave.OutcomeQuotaExceeded, gamesave.OutcomeOf(err))
	assert.Equal(t, gamesave.OutcomeOK, gamesave.OutcomeOf(nil))
	assert.Equal(t, gamesave.OutcomeNoAccess, gamesave.OutcomeOf(errors.New("boom")))
}

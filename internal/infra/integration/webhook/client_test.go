package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sclayai/proposal-intake/internal/entity"
	"github.com/sclayai/proposal-intake/internal/usecase"
)

func TestForwardPostsFormTypeAndFields(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	err := c.Forward(context.Background(), usecase.ForwardPayload{
		FormType: entity.KindProspect,
		ProspectInput: &usecase.ProspectInput{
			ProspectBusinessName: "Apex Roofing",
			ProspectEmail:        "ann@apex.test",
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "prospect", got["formType"])
	assert.Equal(t, "Apex Roofing", got["prospectBusinessName"])
	assert.Equal(t, "ann@apex.test", got["prospectEmail"])
	assert.NotContains(t, got, "clientName")
}

func TestPostNon2xxIsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, time.Second).Post(context.Background(), []byte(`{}`))

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
	assert.Equal(t, "upstream down", se.Body)
}

func TestPostAccepts204(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	assert.NoError(t, NewClient(srv.URL, time.Second).Post(context.Background(), []byte(`{}`)))
}

func TestPostWithoutURL(t *testing.T) {
	err := NewClient("", 0).Post(context.Background(), []byte(`{}`))

	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestPostHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := NewClient(srv.URL, 5*time.Second).Post(ctx, []byte(`{}`))

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

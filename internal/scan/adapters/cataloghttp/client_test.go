package cataloghttp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scanid/internal/scan/models"
	"scanid/pkg/domain"
	dErrors "scanid/pkg/domain-errors"
)

func TestClient_Lookup(t *testing.T) {
	orgID := domain.OrganizationID(uuid.New())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/catalog/search", r.URL.Path)
		assert.Equal(t, "5901234123457", r.URL.Query().Get("q"))
		assert.Equal(t, "pos", r.URL.Query().Get("context"))
		assert.Equal(t, orgID.String(), r.Header.Get("X-Organization-ID"))
		assert.Equal(t, "Bearer catalog-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"exactMatch": true,
			"items": [{"id":"p1","name":"Cola 0.5L","sku":"COLA-05","matchType":"barcode","type":"product"}]
		}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, WithAPIToken("catalog-token"))
	require.NoError(t, err)

	result, err := client.Lookup(context.Background(), orgID, models.ContextPOS, "5901234123457")
	require.NoError(t, err)
	assert.True(t, result.ExactMatch)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "p1", result.Items[0].ID)
	assert.Equal(t, models.MatchBarcode, result.Items[0].MatchType)
}

func TestClient_Lookup_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL)
	require.NoError(t, err)

	_, err = client.Lookup(context.Background(), domain.OrganizationID(uuid.New()), models.ContextGlobal, "x")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func TestClient_Lookup_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"items":`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL)
	require.NoError(t, err)

	_, err = client.Lookup(context.Background(), domain.OrganizationID(uuid.New()), models.ContextGlobal, "x")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient("")
	require.Error(t, err)
}

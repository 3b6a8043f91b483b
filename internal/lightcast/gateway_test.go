package lightcast

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLightcast stands in for both the auth and skills endpoints.
type fakeLightcast struct {
	mux        *http.ServeMux
	srv        *httptest.Server
	authCalls  int
	skillCalls int
}

func newFakeLightcast(t *testing.T) *fakeLightcast {
	t.Helper()
	f := &fakeLightcast{mux: http.NewServeMux()}
	f.mux.HandleFunc("POST /connect/token", func(w http.ResponseWriter, r *http.Request) {
		f.authCalls++
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.Form.Get("grant_type"))
		assert.Equal(t, "emsi_open", r.Form.Get("scope"))
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-123"}) //nolint:errcheck
	})
	f.srv = httptest.NewServer(f.mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeLightcast) gateway() *Gateway {
	return New("client-id", "client-secret", &Options{
		AuthURL:     f.srv.URL + "/connect/token",
		SkillsURL:   f.srv.URL + "/skills",
		VersionsURL: f.srv.URL + "/versions/latest",
	})
}

func TestGateway_MissingCredentials(t *testing.T) {
	g := New("", "", nil)

	_, err := g.Search(context.Background(), "python", 10)

	var missing *ErrMissingCredentials
	assert.ErrorAs(t, err, &missing)
}

func TestGateway_SearchReshapesRecords(t *testing.T) {
	f := newFakeLightcast(t)
	f.mux.HandleFunc("GET /skills", func(w http.ResponseWriter, r *http.Request) {
		f.skillCalls++
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "python", r.URL.Query().Get("q"))
		assert.Equal(t, "id,name,type,description,infoUrl", r.URL.Query().Get("fields"))
		assert.Equal(t, "20", r.URL.Query().Get("limit"))

		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"data": []map[string]any{
				{
					"id":          "KS125LS6N7WP4S6SFTCK",
					"name":        "Python (Programming Language)",
					"type":        map[string]string{"id": "ST1", "name": "Specialized Skill"},
					"description": "A general-purpose language",
					"infoUrl":     "https://skills.lightcast.io/KS125LS6N7WP4S6SFTCK",
				},
			},
		})
	})

	records, err := f.gateway().Search(context.Background(), "python", 20)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "KS125LS6N7WP4S6SFTCK", records[0].ID)
	assert.Equal(t, "Python (Programming Language)", records[0].Name)
	require.NotNil(t, records[0].Type)
	assert.Equal(t, "Specialized Skill", records[0].Type.Name)
	assert.Equal(t, 1, f.authCalls)
}

func TestGateway_FreshTokenPerCall(t *testing.T) {
	f := newFakeLightcast(t)
	f.mux.HandleFunc("GET /skills", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": []any{}}) //nolint:errcheck
	})

	g := f.gateway()
	_, err := g.Search(context.Background(), "a", 10)
	require.NoError(t, err)
	_, err = g.Search(context.Background(), "b", 10)
	require.NoError(t, err)

	assert.Equal(t, 2, f.authCalls)
}

func TestGateway_ListByTypeSetsTypeIds(t *testing.T) {
	f := newFakeLightcast(t)
	f.mux.HandleFunc("GET /skills", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ST2", r.URL.Query().Get("typeIds"))
		assert.Empty(t, r.URL.Query().Get("q"))
		json.NewEncoder(w).Encode(map[string]any{"data": []any{}}) //nolint:errcheck
	})

	_, err := f.gateway().ListByType(context.Background(), "ST2", 30)
	require.NoError(t, err)
}

func TestGateway_UpstreamErrorSurfacesStatusAndBody(t *testing.T) {
	f := newFakeLightcast(t)
	f.mux.HandleFunc("GET /skills", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	_, err := f.gateway().Search(context.Background(), "python", 10)

	var upstream *ErrUpstreamUnavailable
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusTooManyRequests, upstream.Status)
	assert.Contains(t, upstream.Body, "quota exceeded")
}

func TestGateway_GetByID(t *testing.T) {
	f := newFakeLightcast(t)
	f.mux.HandleFunc("GET /skills/KS440W865GC4VRBW6LJP", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"data": map[string]string{"id": "KS440W865GC4VRBW6LJP", "name": "SQL"},
		})
	})

	record, err := f.gateway().GetByID(context.Background(), "KS440W865GC4VRBW6LJP")
	require.NoError(t, err)
	assert.Equal(t, "SQL", record.Name)
}

func TestGateway_ListTypes_AttributionsEnvelope(t *testing.T) {
	f := newFakeLightcast(t)
	f.mux.HandleFunc("GET /versions/latest", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"attributions": map[string]any{
				"types": []map[string]string{
					{"id": "ST1", "name": "Specialized Skill"},
					{"id": "ST2", "name": "Common Skill"},
				},
			},
		})
	})

	typeList, raw, err := f.gateway().ListTypes(context.Background())
	require.NoError(t, err)
	assert.Nil(t, raw)
	require.Len(t, typeList, 2)
	assert.Equal(t, "Specialized Skill", typeList[0].Name)
}

func TestGateway_ListTypes_TopLevelEnvelope(t *testing.T) {
	f := newFakeLightcast(t)
	f.mux.HandleFunc("GET /versions/latest", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"types": []map[string]string{{"id": "ST1", "name": "Specialized Skill"}},
		})
	})

	typeList, _, err := f.gateway().ListTypes(context.Background())
	require.NoError(t, err)
	require.Len(t, typeList, 1)
	assert.Equal(t, "ST1", typeList[0].ID)
}

func TestGateway_ListTypes_SamplingFallback(t *testing.T) {
	f := newFakeLightcast(t)
	f.mux.HandleFunc("GET /versions/latest", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"version": "9.99"}) //nolint:errcheck
	})
	f.mux.HandleFunc("GET /skills", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1000", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"data": []map[string]any{
				{"id": "K1", "name": "A", "type": map[string]string{"id": "ST2", "name": "Common Skill"}},
				{"id": "K2", "name": "B", "type": map[string]string{"id": "ST1", "name": "Specialized Skill"}},
				{"id": "K3", "name": "C", "type": map[string]string{"id": "ST2", "name": "Common Skill"}},
			},
		})
	})

	typeList, raw, err := f.gateway().ListTypes(context.Background())
	require.NoError(t, err)
	assert.Nil(t, raw)
	require.Len(t, typeList, 2)
	assert.Equal(t, "ST1", typeList[0].ID)
	assert.Equal(t, "ST2", typeList[1].ID)
}

func TestGateway_ListTypes_NothingDerivableReturnsRawPayload(t *testing.T) {
	f := newFakeLightcast(t)
	f.mux.HandleFunc("GET /versions/latest", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"version": "9.99"}) //nolint:errcheck
	})
	f.mux.HandleFunc("GET /skills", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": []any{}}) //nolint:errcheck
	})

	typeList, raw, err := f.gateway().ListTypes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, typeList)
	assert.JSONEq(t, `{"version": "9.99"}`, string(raw))
}

func TestGateway_CountsByType(t *testing.T) {
	f := newFakeLightcast(t)
	f.mux.HandleFunc("GET /skills", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"data": []map[string]any{
				{"id": "K1", "name": "A", "type": map[string]string{"id": "ST1", "name": "Specialized Skill"}},
				{"id": "K2", "name": "B", "type": map[string]string{"id": "ST1", "name": "Specialized Skill"}},
				{"id": "K3", "name": "C", "type": map[string]string{"id": "ST2", "name": "Common Skill"}},
				{"id": "K4", "name": "D"},
			},
		})
	})

	counts, err := f.gateway().CountsByType(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, "ST1", counts[0].Type.ID)
	assert.Equal(t, 2, counts[0].Count)
	assert.Equal(t, 1, counts[1].Count)
}

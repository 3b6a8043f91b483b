package lightcast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/peopleprotocol/skill-builder/internal/types"
)

// Production endpoints for the Lightcast skills API.
const (
	DefaultAuthURL     = "https://auth.emsicloud.com/connect/token"
	DefaultSkillsURL   = "https://emsiservices.com/skills/versions/latest/skills"
	DefaultVersionsURL = "https://emsiservices.com/skills/versions/latest"
)

const (
	// skillFields selects the fields every SkillRecord consumes.
	skillFields = "id,name,type,description,infoUrl"
	// sampleLimit is how many skills get sampled when the version endpoint
	// yields no usable type list, and when counting skills per type.
	sampleLimit = 1000
	// requestTimeout bounds a single upstream call.
	requestTimeout = 30 * time.Second
)

// Gateway issues authenticated queries against the Lightcast catalog and
// reshapes responses into SkillRecord values. Every call fetches a fresh
// bearer token; there is no refresh-on-expiry logic and no retry.
type Gateway struct {
	clientID     string
	clientSecret string
	authURL      string
	skillsURL    string
	versionsURL  string
	httpClient   *http.Client
	log          *logrus.Entry
}

// Options overrides gateway endpoints, mainly for tests.
type Options struct {
	AuthURL     string
	SkillsURL   string
	VersionsURL string
	HTTPClient  *http.Client
}

// New creates a gateway with the given client credentials.
func New(clientID, clientSecret string, opts *Options) *Gateway {
	g := &Gateway{
		clientID:     clientID,
		clientSecret: clientSecret,
		authURL:      DefaultAuthURL,
		skillsURL:    DefaultSkillsURL,
		versionsURL:  DefaultVersionsURL,
		httpClient:   &http.Client{Timeout: requestTimeout},
		log:          logrus.WithField("component", "lightcast"),
	}
	if opts != nil {
		if opts.AuthURL != "" {
			g.authURL = opts.AuthURL
		}
		if opts.SkillsURL != "" {
			g.skillsURL = opts.SkillsURL
		}
		if opts.VersionsURL != "" {
			g.versionsURL = opts.VersionsURL
		}
		if opts.HTTPClient != nil {
			g.httpClient = opts.HTTPClient
		}
	}
	return g
}

// skillsEnvelope is the documented response shape of the skills endpoint.
type skillsEnvelope struct {
	Data []types.SkillRecord `json:"data"`
}

// Search returns skills matching a free-text query.
func (g *Gateway) Search(ctx context.Context, query string, limit int) ([]types.SkillRecord, error) {
	return g.querySkills(ctx, query, "", limit)
}

// ListByType returns skills belonging to one taxonomy category.
func (g *Gateway) ListByType(ctx context.Context, typeID string, limit int) ([]types.SkillRecord, error) {
	return g.querySkills(ctx, "", typeID, limit)
}

// GetByID fetches a single skill by its taxonomy key.
func (g *Gateway) GetByID(ctx context.Context, id string) (*types.SkillRecord, error) {
	token, err := g.fetchToken(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := g.skillsURL + "/" + url.PathEscape(id) + "?fields=" + url.QueryEscape(skillFields)
	body, err := g.authorizedGet(ctx, "skill lookup", endpoint, token)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data *types.SkillRecord `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Data == nil {
		return nil, &ErrUpstreamUnavailable{Operation: "skill lookup", Status: http.StatusOK, Body: "unexpected response shape"}
	}
	return envelope.Data, nil
}

// ListTypes returns the taxonomy's skill-type categories. Lightcast has
// shipped the type list under several envelope shapes over time, so the
// decoder falls through a chain of known locations before resorting to
// sampling skills and deriving the distinct types they reference. When even
// sampling yields nothing, the raw version payload is returned alongside the
// empty list for diagnostics.
func (g *Gateway) ListTypes(ctx context.Context) ([]types.SkillType, json.RawMessage, error) {
	token, err := g.fetchToken(ctx)
	if err != nil {
		return nil, nil, err
	}

	body, err := g.authorizedGet(ctx, "type listing", g.versionsURL, token)
	if err != nil {
		return nil, nil, err
	}

	if typeList := typesFromVersionPayload(body); len(typeList) > 0 {
		return typeList, nil, nil
	}

	g.log.Warn("version endpoint carried no type list, sampling skills instead")
	sampled, err := g.querySkillsWithToken(ctx, token, "", "", sampleLimit)
	if err != nil {
		return nil, nil, err
	}
	if typeList := typesFromRecords(sampled); len(typeList) > 0 {
		return typeList, nil, nil
	}

	return []types.SkillType{}, json.RawMessage(body), nil
}

// CountsByType samples the catalog once and counts skills per category.
// Counts are approximate beyond the sample size; the taxonomy has far more
// skills than one page, so treat these as relative weights.
func (g *Gateway) CountsByType(ctx context.Context) ([]types.TypeCount, error) {
	token, err := g.fetchToken(ctx)
	if err != nil {
		return nil, err
	}

	sampled, err := g.querySkillsWithToken(ctx, token, "", "", sampleLimit)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*types.TypeCount)
	for _, rec := range sampled {
		if rec.Type == nil || rec.Type.ID == "" {
			continue
		}
		tc, ok := byID[rec.Type.ID]
		if !ok {
			tc = &types.TypeCount{Type: *rec.Type}
			byID[rec.Type.ID] = tc
		}
		tc.Count++
	}

	counts := make([]types.TypeCount, 0, len(byID))
	for _, tc := range byID {
		counts = append(counts, *tc)
	}
	sort.Slice(counts, func(i, j int) bool {
		return counts[i].Type.ID < counts[j].Type.ID
	})
	return counts, nil
}

// querySkills fetches a fresh token and queries the skills endpoint.
func (g *Gateway) querySkills(ctx context.Context, query, typeID string, limit int) ([]types.SkillRecord, error) {
	token, err := g.fetchToken(ctx)
	if err != nil {
		return nil, err
	}
	return g.querySkillsWithToken(ctx, token, query, typeID, limit)
}

func (g *Gateway) querySkillsWithToken(ctx context.Context, token, query, typeID string, limit int) ([]types.SkillRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	params := url.Values{}
	params.Set("fields", skillFields)
	params.Set("limit", strconv.Itoa(limit))
	if query != "" {
		params.Set("q", query)
	}
	if typeID != "" {
		params.Set("typeIds", typeID)
	}

	body, err := g.authorizedGet(ctx, "skills search", g.skillsURL+"?"+params.Encode(), token)
	if err != nil {
		return nil, err
	}

	var envelope skillsEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode skills response: %w", err)
	}
	return envelope.Data, nil
}

// authorizedGet performs one bearer-authenticated GET and returns the body.
func (g *Gateway) authorizedGet(ctx context.Context, operation, endpoint, token string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, &ErrUpstreamUnavailable{Operation: operation, Status: 0, Body: err.Error()}
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		g.log.WithFields(logrus.Fields{
			"operation": operation,
			"status":    resp.StatusCode,
		}).Warn("upstream request failed")
		return nil, &ErrUpstreamUnavailable{Operation: operation, Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// typesFromVersionPayload probes the known envelope locations for a type list.
func typesFromVersionPayload(body []byte) []types.SkillType {
	var attributions struct {
		Attributions struct {
			Types []types.SkillType `json:"types"`
		} `json:"attributions"`
	}
	if err := json.Unmarshal(body, &attributions); err == nil && len(attributions.Attributions.Types) > 0 {
		return attributions.Attributions.Types
	}

	var topLevel struct {
		Types []types.SkillType `json:"types"`
	}
	if err := json.Unmarshal(body, &topLevel); err == nil && len(topLevel.Types) > 0 {
		return topLevel.Types
	}

	var data struct {
		Data struct {
			Types []types.SkillType `json:"types"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &data); err == nil && len(data.Data.Types) > 0 {
		return data.Data.Types
	}

	return nil
}

// typesFromRecords derives the distinct type list from sampled skills.
func typesFromRecords(records []types.SkillRecord) []types.SkillType {
	seen := make(map[string]bool)
	var typeList []types.SkillType
	for _, rec := range records {
		if rec.Type == nil || rec.Type.ID == "" || seen[rec.Type.ID] {
			continue
		}
		seen[rec.Type.ID] = true
		typeList = append(typeList, *rec.Type)
	}
	sort.Slice(typeList, func(i, j int) bool {
		return typeList[i].ID < typeList[j].ID
	})
	return typeList
}

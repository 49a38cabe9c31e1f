package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"smurfbrief/internal/config"
	"smurfbrief/internal/constants"
	"smurfbrief/internal/domain"
)

// PulseClient talks to the SC2Pulse public ladder API.
type PulseClient struct {
	baseURL string
	client  *fasthttp.Client
}

func NewPulseClient(cfg *config.Config) *PulseClient {
	return &PulseClient{
		baseURL: strings.TrimRight(cfg.PulseBaseURL, "/"),
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

// SearchCharacters fetches every ladder character matching the display
// name. Zero results is a valid empty slice; the resolver decides whether
// that is an error.
func (c *PulseClient) SearchCharacters(ctx context.Context, name string) ([]*domain.CharacterStats, error) {
	u := fmt.Sprintf("%s/sc2/api/characters?query=%s", c.baseURL, url.QueryEscape(name))
	entries, err := doRequest[[]characterSearchEntry](ctx, c.client, u)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.CharacterStats, 0, len(*entries))
	for _, e := range *entries {
		out = append(out, e.toDomain())
	}
	return out, nil
}

// TeamHistory fetches the merged (timestamp, rating) series for the given
// team correlation ids. The response groups points per legacy uid; the
// caller normalizes the merged pairs.
func (c *PulseClient) TeamHistory(ctx context.Context, legacyUIDs []string) ([]domain.RatingSnapshot, error) {
	if len(legacyUIDs) == 0 {
		return nil, nil
	}

	params := make([]string, 0, len(legacyUIDs)+3)
	for _, uid := range legacyUIDs {
		params = append(params, "teamLegacyUid="+url.QueryEscape(uid))
	}
	params = append(params,
		"groupBy=LEGACY_UID",
		"static=LEGACY_ID",
		"history=TIMESTAMP&history=RATING",
	)
	u := fmt.Sprintf("%s/sc2/api/team-histories?%s", c.baseURL, strings.Join(params, "&"))

	entries, err := doRequest[[]teamHistoryEntry](ctx, c.client, u)
	if err != nil {
		return nil, err
	}

	var points []domain.RatingSnapshot
	for _, e := range *entries {
		n := len(e.History.Timestamp)
		if len(e.History.Rating) < n {
			n = len(e.History.Rating)
		}
		for i := 0; i < n; i++ {
			points = append(points, domain.RatingSnapshot{
				Timestamp: time.Unix(e.History.Timestamp[i], 0).UTC(),
				Rating:    e.History.Rating[i],
			})
		}
	}
	return points, nil
}

func doRequest[T any](ctx context.Context, client *fasthttp.Client, url string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = client.DoDeadline(req, resp, deadline)
	} else {
		err = client.Do(req, resp)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstreamUnavailable, resp.StatusCode())
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}

type characterSearchEntry struct {
	LeagueMax        int           `json:"leagueMax"`
	RatingMax        int           `json:"ratingMax"`
	TotalGamesPlayed int           `json:"totalGamesPlayed"`
	PreviousStats    seasonStats   `json:"previousStats"`
	CurrentStats     seasonStats   `json:"currentStats"`
	Members          membersEntry  `json:"members"`
}

type seasonStats struct {
	Rating      int `json:"rating"`
	GamesPlayed int `json:"gamesPlayed"`
	Rank        int `json:"rank"`
}

type membersEntry struct {
	Character characterEntry `json:"character"`
	Account   accountEntry   `json:"account"`
	RaceGames map[string]int `json:"raceGames"`
}

type characterEntry struct {
	ID          int64       `json:"id"`
	AccountID   int64       `json:"accountId"`
	BattlenetID int64       `json:"battlenetId"`
	Realm       int         `json:"realm"`
	Name        string      `json:"name"`
	Region      string      `json:"region"`
	Teams       []teamEntry `json:"teams"`
}

type accountEntry struct {
	ID        int64  `json:"id"`
	BattleTag string `json:"battleTag"`
}

type teamEntry struct {
	LegacyUID  string            `json:"legacyUid"`
	Season     int               `json:"season"`
	Rating     int               `json:"rating"`
	LeagueType int               `json:"leagueType"`
	LastPlayed string            `json:"lastPlayed"`
	Members    []teamMemberEntry `json:"members"`
}

type teamMemberEntry struct {
	Character characterEntry `json:"character"`
}

type teamHistoryEntry struct {
	History struct {
		Timestamp []int64 `json:"TIMESTAMP"`
		Rating    []int   `json:"RATING"`
	} `json:"history"`
}

func (e characterSearchEntry) toDomain() *domain.CharacterStats {
	ch := e.Members.Character

	teams := make([]domain.TeamObservation, 0, len(ch.Teams))
	for _, t := range ch.Teams {
		obs := domain.TeamObservation{
			LegacyUID: t.LegacyUID,
			Season:    t.Season,
			Rating:    t.Rating,
			League:    t.LeagueType,
		}
		if ts, ok := parseLastPlayed(t.LastPlayed); ok {
			obs.LastPlayed = &ts
		}
		for _, m := range t.Members {
			obs.Members = append(obs.Members, domain.CharacterRef{
				ID:          m.Character.ID,
				BattlenetID: m.Character.BattlenetID,
				Realm:       m.Character.Realm,
				Name:        m.Character.Name,
				Region:      m.Character.Region,
			})
		}
		teams = append(teams, obs)
	}

	return &domain.CharacterStats{
		Character: domain.CharacterRecord{
			ID:          ch.ID,
			AccountID:   ch.AccountID,
			BattlenetID: ch.BattlenetID,
			Realm:       ch.Realm,
			Name:        ch.Name,
			Region:      ch.Region,
			BattleTag:   e.Members.Account.BattleTag,
			Teams:       teams,
		},
		CurrentRating:    e.CurrentStats.Rating,
		CurrentGames:     e.CurrentStats.GamesPlayed,
		PreviousRating:   e.PreviousStats.Rating,
		PreviousGames:    e.PreviousStats.GamesPlayed,
		RatingMax:        e.RatingMax,
		LeagueMax:        e.LeagueMax,
		TotalGamesPlayed: e.TotalGamesPlayed,
		RaceGames:        e.Members.RaceGames,
	}
}

// parseLastPlayed accepts the API's ISO timestamps with or without the
// trailing Z.
func parseLastPlayed(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse("2006-01-02T15:04:05", strings.TrimSuffix(raw, "Z")); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

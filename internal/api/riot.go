package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"league-activity/internal/config"
	"league-activity/internal/constants"
	"league-activity/internal/domain"
)

// RiotClient talks to the Riot match-v5 and account-v1 APIs. It is the
// concrete match-history source behind the orchestrator.
type RiotClient struct {
	apiKey string
	client *fasthttp.Client
}

func NewRiotClient(cfg *config.Config) *RiotClient {
	return &RiotClient{
		apiKey: cfg.RiotAPIKey,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

// ResolveIdentity maps an account reference to its PUUID, the
// provider-assigned stable identity all history lookups key on.
func (c *RiotClient) ResolveIdentity(ctx context.Context, account domain.AccountRef) (string, error) {
	gameName, tagLine, ok := strings.Cut(account.DisplayName, "#")
	if !ok {
		return "", fmt.Errorf("%w: display name %q has no tag line", domain.ErrUpstreamNotFound, account.DisplayName)
	}

	resp, err := doRequest[accountResponse](ctx, c, accountLookupURL(account.Region, gameName, tagLine))
	if err != nil {
		return "", err
	}
	if resp.PUUID == "" {
		return "", fmt.Errorf("%w: empty puuid for %q", domain.ErrUpstreamNotFound, account.DisplayName)
	}
	return resp.PUUID, nil
}

// ListRecentMatchIDs returns up to count match ids, newest first. An
// account with no history yields an empty slice, not an error.
func (c *RiotClient) ListRecentMatchIDs(ctx context.Context, region, puuid string, count int) ([]string, error) {
	if count <= 0 || count > constants.MatchBatchSize {
		count = constants.MatchBatchSize
	}

	reqURL := fmt.Sprintf("https://%s.api.riotgames.com/lol/match/v5/matches/by-puuid/%s/ids?start=0&count=%d",
		routingRegion(region), puuid, count)
	ids, err := doRequest[[]string](ctx, c, reqURL)
	if err != nil {
		return nil, err
	}
	return *ids, nil
}

// FetchMatchDetail fetches one match and reduces it to the summary for
// the given participant. Either error class means "skip this match" to
// callers, never a batch failure.
func (c *RiotClient) FetchMatchDetail(ctx context.Context, region, matchID, puuid string) (domain.MatchSummary, error) {
	reqURL := fmt.Sprintf("https://%s.api.riotgames.com/lol/match/v5/matches/%s",
		routingRegion(region), matchID)
	resp, err := doRequest[matchResponse](ctx, c, reqURL)
	if err != nil {
		return domain.MatchSummary{}, err
	}

	summary := domain.MatchSummary{
		MatchID: matchID,
		Queue:   queueCategory(resp.Info.QueueID),
	}
	if resp.Info.GameCreation > 0 {
		summary.CreationTime = time.UnixMilli(resp.Info.GameCreation)
	}

	for _, p := range resp.Info.Participants {
		if p.PUUID != puuid {
			continue
		}
		label := p.TeamPosition
		if label == "" {
			label = p.IndividualPosition
		}
		summary.Role = NormalizeRole(label)
		break
	}

	return summary, nil
}

// NormalizeRole maps a raw positional label to one of the five roles.
// Case-insensitive substring matching in fixed priority order;
// unmatched or empty labels carry no role.
func NormalizeRole(label string) *domain.Role {
	l := strings.ToUpper(label)
	if l == "" {
		return nil
	}

	var role domain.Role
	switch {
	case strings.Contains(l, "TOP"):
		role = domain.RoleTop
	case strings.Contains(l, "JUNGLE"):
		role = domain.RoleJungle
	case strings.Contains(l, "MID"):
		role = domain.RoleMid
	case strings.Contains(l, "BOT"):
		role = domain.RoleADC
	case strings.Contains(l, "SUPPORT"), strings.Contains(l, "UTILITY"):
		role = domain.RoleSupport
	default:
		return nil
	}
	return &role
}

// accountLookupURL escapes the name segments: riot ids are
// user-entered and may contain spaces.
func accountLookupURL(region, gameName, tagLine string) string {
	return fmt.Sprintf("https://%s.api.riotgames.com/riot/account/v1/accounts/by-riot-id/%s/%s",
		routingRegion(region), url.PathEscape(gameName), url.PathEscape(tagLine))
}

func queueCategory(queueID int) domain.QueueCategory {
	switch queueID {
	case 420:
		return domain.QueueRankedSolo
	case 440:
		return domain.QueueRankedFlex
	default:
		return domain.QueueOther
	}
}

// routingRegion maps a platform region to the regional routing host
// the match and account APIs are served from.
func routingRegion(region string) string {
	switch strings.ToLower(region) {
	case "euw1", "eun1", "tr1", "ru":
		return "europe"
	case "kr", "jp1":
		return "asia"
	case "oc1", "sg2", "tw2", "vn2":
		return "sea"
	default:
		return "americas"
	}
}

func doRequest[T any](ctx context.Context, client *RiotClient, url string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("X-Riot-Token", client.apiKey)

	// Seconds-scale cap per call; a caller deadline that lands sooner wins.
	deadline := time.Now().Add(constants.ExternalAPITimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := client.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}

	switch status := resp.StatusCode(); {
	case status == fasthttp.StatusOK:
	case status == fasthttp.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", domain.ErrUpstreamNotFound, url)
	default:
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstreamUnavailable, status)
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", domain.ErrUpstreamUnavailable, err)
	}
	return &result, nil
}

type accountResponse struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

type matchResponse struct {
	Metadata struct {
		MatchID string `json:"matchId"`
	} `json:"metadata"`
	Info struct {
		GameCreation int64              `json:"gameCreation"`
		QueueID      int                `json:"queueId"`
		Participants []matchParticipant `json:"participants"`
	} `json:"info"`
}

type matchParticipant struct {
	PUUID              string `json:"puuid"`
	TeamPosition       string `json:"teamPosition"`
	IndividualPosition string `json:"individualPosition"`
}

// Package ambient looks up background music tracks for meditation categories
// through the Spotify search API (client-credentials flow).
package ambient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/wanyue/mindgarden/backend/internal/config"
	ambientmodel "github.com/wanyue/mindgarden/backend/internal/model/ambient"
)

const (
	tokenURL = "https://accounts.spotify.com/api/token"
	apiURL   = "https://api.spotify.com/v1"

	// 每个分类最多取前两个检索词、合计五首曲目。
	maxQueriesPerCategory = 2
	maxTracksPerCategory  = 5
)

// Service resolves category queries into playable tracks.
type Service struct {
	cfg    config.SpotifyConfig
	client *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewService 创建音乐查询服务实例
func NewService(cfg config.SpotifyConfig) *Service {
	return &Service{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// TracksForCategory searches the category's configured queries and returns up
// to five tracks. Individual query failures are logged and skipped.
func (s *Service) TracksForCategory(ctx context.Context, category ambientmodel.Category) ([]ambientmodel.Track, error) {
	queries := category.Queries
	if len(queries) > maxQueriesPerCategory {
		queries = queries[:maxQueriesPerCategory]
	}

	tracks := make([]ambientmodel.Track, 0, maxTracksPerCategory)
	for _, query := range queries {
		if len(tracks) >= maxTracksPerCategory {
			break
		}
		found, err := s.search(ctx, query, 3)
		if err != nil {
			log.Printf("[ambient] search failed query=%q: %v", query, err)
			continue
		}
		for _, track := range found {
			if len(tracks) >= maxTracksPerCategory {
				break
			}
			tracks = append(tracks, track)
		}
	}

	if len(tracks) == 0 {
		return nil, fmt.Errorf("no tracks found for category %s", category.ID)
	}
	return tracks, nil
}

type searchResponse struct {
	Tracks struct {
		Items []struct {
			ID      string `json:"id"`
			Name    string `json:"name"`
			Artists []struct {
				Name string `json:"name"`
			} `json:"artists"`
			PreviewURL   string `json:"preview_url"`
			ExternalURLs struct {
				Spotify string `json:"spotify"`
			} `json:"external_urls"`
		} `json:"items"`
	} `json:"tracks"`
}

func (s *Service) search(ctx context.Context, query string, limit int) ([]ambientmodel.Track, error) {
	token, err := s.token(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("search API status %d: %s", resp.StatusCode, body)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	tracks := make([]ambientmodel.Track, 0, len(decoded.Tracks.Items))
	for _, item := range decoded.Tracks.Items {
		artist := ""
		if len(item.Artists) > 0 {
			artist = item.Artists[0].Name
		}
		tracks = append(tracks, ambientmodel.Track{
			ID:          item.ID,
			Name:        item.Name,
			Artist:      artist,
			PreviewURL:  item.PreviewURL,
			ExternalURL: item.ExternalURLs.Spotify,
		})
	}
	return tracks, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// token 获取或复用 client-credentials 令牌，过期前一分钟刷新。
func (s *Service) token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.accessToken != "" && time.Now().Before(s.tokenExpiry) {
		return s.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.cfg.ClientID, s.cfg.ClientSecret)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("token API status %d: %s", resp.StatusCode, body)
	}

	var decoded tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if decoded.AccessToken == "" {
		return "", fmt.Errorf("token API returned empty access token")
	}

	s.accessToken = decoded.AccessToken
	s.tokenExpiry = time.Now().Add(time.Duration(decoded.ExpiresIn)*time.Second - time.Minute)
	return s.accessToken, nil
}

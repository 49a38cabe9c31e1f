package api

import (
	"context"

	"github.com/valyala/fasthttp"

	"smurfbrief/internal/config"
	"smurfbrief/internal/constants"
	"smurfbrief/internal/domain"
)

// GameClient polls the local SC2 client's state endpoint for the live
// lobby.
type GameClient struct {
	url    string
	client *fasthttp.Client
}

func NewGameClient(cfg *config.Config) *GameClient {
	return &GameClient{
		url: cfg.GameClientURL,
		client: &fasthttp.Client{
			ReadTimeout:  constants.GameClientTimeout,
			WriteTimeout: constants.GameClientTimeout,
		},
	}
}

// Players returns the current lobby participants. An empty slice means no
// game is running.
func (c *GameClient) Players(ctx context.Context) ([]domain.LivePlayer, error) {
	resp, err := doRequest[gameStateResponse](ctx, c.client, c.url)
	if err != nil {
		return nil, err
	}

	players := make([]domain.LivePlayer, 0, len(resp.Players))
	for _, p := range resp.Players {
		players = append(players, domain.LivePlayer{
			Name:   p.Name,
			Race:   p.Race,
			Result: p.Result,
		})
	}
	return players, nil
}

type gameStateResponse struct {
	IsReplay    bool    `json:"isReplay"`
	DisplayTime float64 `json:"displayTime"`
	Players     []struct {
		ID     int    `json:"id"`
		Name   string `json:"name"`
		Type   string `json:"type"`
		Race   string `json:"race"`
		Result string `json:"result"`
	} `json:"players"`
}

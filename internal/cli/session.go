package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/mcoot/battleship-go/internal/api/apierr"
	"github.com/mcoot/battleship-go/internal/api/request"
	"github.com/mcoot/battleship-go/internal/api/response"
	"github.com/mcoot/battleship-go/internal/command"
	"github.com/mcoot/battleship-go/internal/factory"
	"github.com/mcoot/battleship-go/internal/model"
)

// Session runs match commands against either the local engine or a server
type Session interface {
	// Open resumes an unfinished match, or starts a new one under id.
	// resumed reports whether an existing match was picked up.
	Open(ctx context.Context, id model.MatchID) (m response.Match, resumed bool, err error)
	// Run executes one match command
	Run(ctx context.Context, id model.MatchID, cmd command.Command) (response.CommandResponse, error)
	// Statistics returns the cumulative results
	Statistics(ctx context.Context) (response.Statistics, error)
	Close() error
}

// localSession drives an in-process engine
type localSession struct {
	app *factory.App
}

var _ Session = (*localSession)(nil)

func (s *localSession) Open(ctx context.Context, id model.MatchID) (response.Match, bool, error) {
	controller := s.app.MatchController

	m, err := controller.GetMatch(ctx, id)
	switch {
	case err == nil && !m.IsOver():
		return response.MatchFromModel(m), true, nil
	case err == nil:
		result, err := controller.Reset(ctx, id)
		if err != nil {
			return response.Match{}, false, err
		}
		return response.MatchFromModel(result.Match), false, nil
	case errors.Is(err, model.ErrMatchNotFound):
		result, err := controller.CreateMatch(ctx, id)
		if err != nil {
			return response.Match{}, false, err
		}
		return response.MatchFromModel(result.Match), false, nil
	default:
		return response.Match{}, false, err
	}
}

func (s *localSession) Run(ctx context.Context, id model.MatchID, cmd command.Command) (response.CommandResponse, error) {
	result, err := s.app.MatchController.Execute(ctx, id, cmd)
	if err != nil {
		return response.CommandResponse{}, err
	}
	return response.CommandResponseFromResult(result), nil
}

func (s *localSession) Statistics(ctx context.Context) (response.Statistics, error) {
	return response.StatisticsFromModel(s.app.MatchController.Statistics(ctx)), nil
}

func (s *localSession) Close() error {
	return s.app.Close()
}

// remoteSession drives a match held by a server
type remoteSession struct {
	client *Client
}

var _ Session = (*remoteSession)(nil)

func matchPath(id model.MatchID, suffix string) string {
	return "/api/v1/matches/" + url.PathEscape(string(id)) + suffix
}

func (s *remoteSession) Open(ctx context.Context, id model.MatchID) (response.Match, bool, error) {
	var m response.Match
	err := s.client.Get(ctx, matchPath(id, ""), &m)

	switch {
	case err == nil && m.Phase != string(model.PhaseOver):
		return m, true, nil
	case err == nil:
		var resp response.CommandResponse
		if err := s.client.Post(ctx, matchPath(id, "/reset"), nil, &resp); err != nil {
			return response.Match{}, false, err
		}
		if resp.Match == nil {
			return response.Match{}, false, errors.New("server returned no match")
		}
		return *resp.Match, false, nil
	case IsCode(err, apierr.CodeMatchNotFound):
		var created response.Match
		if err := s.client.Post(ctx, "/api/v1/matches", request.CreateMatchRequest{ID: string(id)}, &created); err != nil {
			return response.Match{}, false, err
		}
		return created, false, nil
	default:
		return response.Match{}, false, err
	}
}

func (s *remoteSession) Run(ctx context.Context, id model.MatchID, cmd command.Command) (response.CommandResponse, error) {
	var resp response.CommandResponse
	var err error

	switch cmd := cmd.(type) {
	case command.Place:
		err = s.client.Post(ctx, matchPath(id, "/ships"), request.PlaceShipRequest{
			Ship:        string(cmd.Ship),
			Origin:      cmd.Origin.String(),
			Orientation: string(cmd.Orientation),
		}, &resp)
	case command.PlaceRandom:
		err = s.client.Post(ctx, matchPath(id, "/ships/random"), nil, &resp)
	case command.Start:
		err = s.client.Post(ctx, matchPath(id, "/start"), nil, &resp)
	case command.Fire:
		err = s.client.Post(ctx, matchPath(id, "/fire"), request.FireRequest{Target: cmd.Target.String()}, &resp)
	case command.Reset:
		err = s.client.Post(ctx, matchPath(id, "/reset"), nil, &resp)
	case command.Stats:
		totals, statsErr := s.Statistics(ctx)
		resp.Statistics, err = &totals, statsErr
	case command.Show:
		var m response.Match
		err = s.client.Get(ctx, matchPath(id, ""), &m)
		resp.Match, resp.Show = &m, string(cmd.Board)
	default:
		err = fmt.Errorf("%w: %s is not a match command", model.ErrMalformedCommand, cmd.Name())
	}

	if err != nil {
		return response.CommandResponse{}, err
	}
	return resp, nil
}

func (s *remoteSession) Statistics(ctx context.Context) (response.Statistics, error) {
	var totals response.Statistics
	err := s.client.Get(ctx, "/api/v1/stats", &totals)
	return totals, err
}

func (s *remoteSession) Close() error {
	return nil
}

// IsCode reports whether err is an API error with the given code
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

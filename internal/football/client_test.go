package football

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ehudso7/StatTact/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamData_SendsTokenAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/teams", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-Auth-Token"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count":1,"teams":[{"id":57,"name":"Arsenal FC","shortName":"Arsenal","tla":"ARS"}]}`))
	}))
	defer srv.Close()

	c := NewClient(config.FootballConfig{APIKey: "secret", BaseURL: srv.URL + "/v4/"})
	data, err := c.TeamData(context.Background(), "Arsenal")
	require.NoError(t, err)
	require.Equal(t, 1, data.Count)
	require.Equal(t, "ARS", data.Teams[0].TLA)
}

func TestTeamData_DisabledMakesNoCall(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	c := NewClient(config.FootballConfig{BaseURL: srv.URL})
	require.False(t, c.Enabled())
	data, err := c.TeamData(context.Background(), "Arsenal")
	require.NoError(t, err)
	require.Nil(t, data)
	require.Zero(t, hits.Load())
}

func TestTeamData_BlankTeam(t *testing.T) {
	c := NewClient(config.FootballConfig{APIKey: "secret", BaseURL: "http://127.0.0.1:0"})
	data, err := c.TeamData(context.Background(), "")
	require.NoError(t, err)
	require.Nil(t, data)
}

func TestTeamData_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(config.FootballConfig{APIKey: "secret", BaseURL: srv.URL})
	_, err := c.TeamData(context.Background(), "Arsenal")
	require.EqualError(t, err, "unexpected status code: 403")
}

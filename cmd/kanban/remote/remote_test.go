package remote

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/kanban/pkg/api"
	"github.com/matryer/is"
)

func TestConfigRoundTrip(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	t.Setenv("KANBAN_CONFIG_DIR", dir)
	t.Setenv("KANBAN_API_KEY", "")

	cfg, err := LoadConfig()
	is.NoErr(err)
	is.Equal(cfg.Server.URL, DefaultServerURL)

	_, err = cfg.Client()
	is.True(errors.Is(err, ErrNotLoggedIn))

	cfg.Server.URL = "https://kanban.example.com"
	cfg.Auth.Token = "token"
	is.NoErr(cfg.Save())

	fi, err := os.Stat(filepath.Join(dir, "config.yaml"))
	is.NoErr(err)
	is.Equal(fi.Mode().Perm(), os.FileMode(0o600))

	cfg, err = LoadConfig()
	is.NoErr(err)
	is.Equal(cfg.Server.URL, "https://kanban.example.com")
	is.Equal(cfg.Auth.Token, "token")
	_, err = cfg.Client()
	is.NoErr(err)
}

func TestConfigFileLayout(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	t.Setenv("KANBAN_CONFIG_DIR", dir)

	is.NoErr(os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server:\n  url: http://kanban:8000\nauth:\n  token: abc\n"), 0o600))
	cfg, err := LoadConfig()
	is.NoErr(err)
	is.Equal(cfg.Server.URL, "http://kanban:8000")
	is.Equal(cfg.Auth.Token, "abc")

	is.NoErr(os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: ["), 0o600))
	_, err = LoadConfig()
	is.True(err != nil)
}

func TestParseID(t *testing.T) {
	cases := map[string]bool{
		"1":   true,
		"42":  true,
		"0":   false,
		"-3":  false,
		"abc": false,
		"":    false,
	}
	for in, ok := range cases {
		_, err := parseID(in)
		if got := err == nil; got != ok {
			t.Errorf("parseID(%q) error = %v, want ok %t", in, err, ok)
		}
	}
}

func TestRenderBoard(t *testing.T) {
	is := is.New(t)
	desc := "Some *markdown* here"
	b := api.BoardDetail{
		Board: api.Board{ID: 1, Name: "Roadmap"},
		Columns: []api.Column{
			{ID: 2, Name: "Done", Position: 2},
			{ID: 1, Name: "To Do", Position: 0, Cards: []api.Card{
				{ID: 7, Title: "A card title that is far too long to fit into a single column", Description: &desc},
			}},
		},
	}

	out, err := renderBoard(b, false)
	is.NoErr(err)
	is.True(strings.Contains(out, "Board: Roadmap"))
	is.True(strings.Contains(out, "To Do (1)"))
	is.True(strings.Contains(out, "#7 A card"))
	is.True(!strings.Contains(out, "single column"))
	is.True(strings.Index(out, "To Do") < strings.Index(out, "Done"))
	is.True(!strings.Contains(out, "markdown"))

	out, err = renderBoard(b, true)
	is.NoErr(err)
	is.True(strings.Contains(out, "markdown"))
}

func TestSharing(t *testing.T) {
	team, org := int64(3), int64(5)
	cases := []struct {
		board api.Board
		want  string
	}{
		{api.Board{}, "-"},
		{api.Board{SharedTeamID: &team, OrganizationID: &org}, "team 3"},
		{api.Board{OrganizationID: &org, IsPublicToOrg: true}, "org 5"},
		{api.Board{SharedTeamID: &team, OrganizationID: &org, IsPublicToOrg: true}, "team 3, org 5"},
	}
	for _, c := range cases {
		if got := sharing(c.board); got != c.want {
			t.Errorf("sharing(%+v) = %q, want %q", c.board, got, c.want)
		}
	}
}

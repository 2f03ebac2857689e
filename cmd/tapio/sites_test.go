package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsalmi/tapio"
	"github.com/vsalmi/tapio/mock"
)

func testDeps(t *testing.T) (*Dependencies, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	return &Dependencies{
		Ctx:    context.Background(),
		Stdout: &stdout,
		Stderr: &stderr,
	}, &stdout, &stderr
}

func registryWith(sites ...*tapio.Site) *mock.SiteRegistry {
	return &mock.SiteRegistry{
		SiteFn: func(key string) (*tapio.Site, error) {
			for _, site := range sites {
				if site.Key == key {
					return site, nil
				}
			}
			return nil, tapio.Errorf(tapio.ENOTFOUND, "site %q not found", key)
		},
		SitesFn: func() []*tapio.Site {
			return sites
		},
	}
}

func migriSite() *tapio.Site {
	return &tapio.Site{
		Key:              "migri",
		BaseURL:          "https://migri.fi",
		Description:      "Finnish Immigration Service",
		TitleSelector:    "title",
		ContentSelectors: []string{"div#main-content", "main"},
		FallbackToBody:   true,
		Crawl:            tapio.CrawlOptions{Depth: 2, MaxConcurrent: 5},
	}
}

func TestSitesListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists configured sites", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(t)
		deps.Sites = registryWith(migriSite())

		cmd := &SitesListCmd{}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "migri")
		assert.Contains(t, stdout.String(), "Finnish Immigration Service")
	})

	t.Run("reports when no sites are configured", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(t)
		deps.Sites = registryWith()

		cmd := &SitesListCmd{}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "No sites configured")
	})
}

func TestSitesInfoCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints resolved configuration", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(t)
		deps.Sites = registryWith(migriSite())

		cmd := &SitesInfoCmd{Site: "migri"}
		require.NoError(t, cmd.Run(deps))

		out := stdout.String()
		assert.Contains(t, out, "https://migri.fi")
		assert.Contains(t, out, "div#main-content, main")
		assert.Contains(t, out, "migri.fi")
	})

	t.Run("unknown site returns ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := testDeps(t)
		deps.Sites = registryWith()

		cmd := &SitesInfoCmd{Site: "nope"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, tapio.ENOTFOUND, tapio.ErrorCode(err))
		assert.Contains(t, stderr.String(), "unknown site")
	})
}

package main

import (
	"fmt"
	"strings"
)

// Run executes the "sites list" command.
func (c *SitesListCmd) Run(deps *Dependencies) error {
	sites := deps.Sites.Sites()
	if len(sites) == 0 {
		fmt.Fprintln(deps.Stdout, "No sites configured.")
		return nil
	}

	for _, site := range sites {
		desc := site.Description
		if desc == "" {
			desc = site.BaseURL
		}
		fmt.Fprintf(deps.Stdout, "%-16s %s\n", site.Key, desc)
	}

	return nil
}

// Run executes the "sites info" command.
func (c *SitesInfoCmd) Run(deps *Dependencies) error {
	site, err := deps.Sites.Site(c.Site)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: unknown site %q. Run 'tapio sites' to see configured sites.\n", c.Site)
		return err
	}

	fmt.Fprintf(deps.Stdout, "key:                %s\n", site.Key)
	fmt.Fprintf(deps.Stdout, "base URL:           %s\n", site.BaseURL)
	if site.Description != "" {
		fmt.Fprintf(deps.Stdout, "description:        %s\n", site.Description)
	}
	baseDir, _ := site.BaseDir()
	fmt.Fprintf(deps.Stdout, "content dir:        %s\n", baseDir)
	fmt.Fprintf(deps.Stdout, "title selector:     %s\n", site.TitleSelector)
	fmt.Fprintf(deps.Stdout, "content selectors:  %s\n", strings.Join(site.ContentSelectors, ", "))
	fmt.Fprintf(deps.Stdout, "fallback to body:   %t\n", site.FallbackToBody)
	fmt.Fprintf(deps.Stdout, "render JS:          %t\n", site.RenderJS)
	fmt.Fprintf(deps.Stdout, "crawl depth:        %d\n", site.Crawl.Depth)
	fmt.Fprintf(deps.Stdout, "max concurrent:     %d\n", site.Crawl.MaxConcurrent)
	fmt.Fprintf(deps.Stdout, "request delay:      %s\n", site.Crawl.RequestDelay)

	return nil
}

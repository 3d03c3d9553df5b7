// Package github provides an HTTP client for the GitHub REST API.
//
// # Overview
//
// This package fetches the data behind the language badge from
// https://api.github.com:
//
//   - [Client.ListRepos]: every public repository of an account
//   - [Client.Languages]: bytes of code per language for one repository
//
// # Usage
//
//	client := github.NewClient(os.Getenv("GITHUB_TOKEN"))
//
//	repos, err := client.ListRepos(ctx, "octocat")
//	if err != nil {
//	    return err
//	}
//	langs, err := client.Languages(ctx, "octocat", repos[0].Name)
//
// # Authentication
//
// A GitHub personal access token is optional. Without a token, the client is
// limited to 60 requests/hour, which covers one refresh of an account with
// fewer than 60 repositories.
//
// # Ordering
//
// [Languages] preserves the order in which GitHub lists languages (largest
// first), which callers rely on for deterministic tie-breaking.
package github

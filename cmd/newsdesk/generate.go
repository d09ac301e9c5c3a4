package main

import "github.com/fwojciec/newsdesk/pipeline"

// Run executes the interview command.
func (c *InterviewCmd) Run(deps *Dependencies) error {
	text, err := readInput(deps, c.File)
	if err != nil {
		return reportError(deps, err)
	}
	opts := c.options()
	opts.Tone = pipeline.ParseTone(c.Tone)

	res, err := deps.Pipeline.GenerateFromInterview(deps.Ctx, pipeline.Interview{Content: text, Title: c.Title}, opts)
	if err != nil {
		return reportError(deps, err)
	}
	return printResult(deps, res)
}

// Run executes the social command.
func (c *SocialCmd) Run(deps *Dependencies) error {
	text, err := readInput(deps, c.File)
	if err != nil {
		return reportError(deps, err)
	}

	res, err := deps.Pipeline.SocialPostToNews(deps.Ctx, pipeline.SocialPost{
		ArtistName:       c.Artist,
		Platform:         c.Platform,
		Content:          text,
		MediaDescription: c.Media,
		OriginalLink:     c.Link,
		Remark:           c.Remark,
	})
	if err != nil {
		return reportError(deps, err)
	}
	return printResult(deps, res)
}

// Run executes the youtube command.
func (c *YouTubeCmd) Run(deps *Dependencies) error {
	res, err := deps.Pipeline.VideoToNews(deps.Ctx, pipeline.Video{
		URL:              c.URL,
		Language:         c.Lang,
		MediaDescription: c.Media,
		Remark:           c.Remark,
	})
	if err != nil {
		return reportError(deps, err)
	}
	return printResult(deps, res)
}

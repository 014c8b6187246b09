package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/hackerpeanutjohn/RainDigest/internal/domain/entity"
)

const filePollInterval = 2 * time.Second

// Provider is the Gemini-backed language model. It covers summarization,
// visual-cue analysis (text and video), title generation and bookmark
// classification.
type Provider struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func NewProvider(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Provider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Provider{client: client, model: model, logger: logger}, nil
}

func (p *Provider) SummarizeText(ctx context.Context, transcript string) (string, error) {
	prompt := fmt.Sprintf("%s\n\n逐字稿內容：\n%s", summaryPrompt, transcript)
	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate summary: %w", err)
	}
	return resp.Text(), nil
}

func (p *Provider) SummarizeAudio(ctx context.Context, audioPath string) (string, error) {
	file, err := p.uploadAndWait(ctx, audioPath)
	if err != nil {
		return "", err
	}

	prompt := summaryPrompt + "\n\n(請根據提供的音訊檔進行整理)"
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromURI(file.URI, file.MIMEType),
		}, genai.RoleUser),
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate summary from audio: %w", err)
	}
	return resp.Text(), nil
}

func (p *Provider) AnalyzeVisualCues(ctx context.Context, timedTranscript string) ([]entity.VisualCue, error) {
	prompt := fmt.Sprintf("%s\n\n逐字稿內容：\n%s", transcriptCuesPrompt, timedTranscript)
	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt),
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"})
	if err != nil {
		return nil, fmt.Errorf("analyze visual cues: %w", err)
	}
	return parseCues(resp.Text())
}

func (p *Provider) AnalyzeVideoCues(ctx context.Context, videoPath string) ([]entity.VisualCue, error) {
	p.logger.Info("uploading video for visual analysis", zap.String("path", videoPath))
	file, err := p.uploadAndWait(ctx, videoPath)
	if err != nil {
		return nil, err
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(videoCuesPrompt),
			genai.NewPartFromURI(file.URI, file.MIMEType),
		}, genai.RoleUser),
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents,
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"})
	if err != nil {
		return nil, fmt.Errorf("analyze video cues: %w", err)
	}
	return parseCues(resp.Text())
}

func (p *Provider) GenerateTitle(ctx context.Context, summary, originalTitle string) (string, error) {
	truncated := truncateRunes(summary, 1000)
	prompt := fmt.Sprintf(`Generate a concise (under 80 chars), descriptive filename-friendly title for this content.
Do NOT use colons, slashes, or special characters.
Use spaces or hyphens.

Original Title: %s
Summary: %s

Title:`, originalTitle, truncated)

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate title: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

func (p *Provider) Classify(ctx context.Context, title, note string, collections []entity.Collection) (int64, error) {
	note = truncateRunes(note, 500)

	var cols strings.Builder
	for _, c := range collections {
		fmt.Fprintf(&cols, "%d: %s\n", c.ID, c.Title)
	}

	prompt := fmt.Sprintf(`You are a highly organized personal librarian.
Analyze the following bookmark and categorize it into ONE of the provided collections.

Bookmark Details:
- Title: %s
- Note/Excerpt: %s

Available Collections (ID: Name):
%s
Instructions:
1. Select the SINGLE BEST collection ID that fits this content.
2. If the content fits multiple, choose the most specific one.
3. If it doesn't fit ANY clearly, return "0".
4. Return ONLY the ID number (integer).`, title, note, cols.String())

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		return 0, fmt.Errorf("classify bookmark: %w", err)
	}
	return parseCollectionID(resp.Text())
}

// uploadAndWait pushes a local file to the Files API and polls until
// Gemini finishes ingesting it.
func (p *Provider) uploadAndWait(ctx context.Context, path string) (*genai.File, error) {
	file, err := p.client.Files.UploadFromPath(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}

	for file.State == genai.FileStateProcessing {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(filePollInterval):
		}
		file, err = p.client.Files.Get(ctx, file.Name, nil)
		if err != nil {
			return nil, fmt.Errorf("poll file state: %w", err)
		}
	}
	if file.State == genai.FileStateFailed {
		return nil, fmt.Errorf("gemini file processing failed for %s", path)
	}
	return file, nil
}

package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"schedule-planner/internal/schedule"
	"schedule-planner/pkg/gemini"
)

// normalize turns raw user input into extractor input. No network call is made
// when the input is empty.
func (uc *implUseCase) normalize(ctx context.Context, in schedule.ProcessInput) (normalizedInput, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" && len(in.Image) == 0 && len(in.Audio) == 0 {
		return normalizedInput{}, schedule.ErrNoInput
	}

	var out normalizedInput
	if len(in.Image) > 0 {
		mt := mimetype.Detect(in.Image)
		if !strings.HasPrefix(mt.String(), "image/") {
			return normalizedInput{}, fmt.Errorf("%w: %s", schedule.ErrUnsupportedMedia, mt.String())
		}
		out.Image = in.Image
		out.ImageMIME = mt.String()
	}

	parts := make([]string, 0, 3)
	if text != "" {
		parts = append(parts, text)
	}
	if transcript := uc.transcribe(ctx, in.Audio, in.AudioName); transcript != "" {
		parts = append(parts, transcript)
	}

	if out.Image != nil && !uc.cfg.Vision {
		if ocr := uc.ocr(ctx, out.Image, out.ImageMIME); ocr != "" {
			parts = append(parts, ocr)
		}
		out.Image = nil
		out.ImageMIME = ""
	}

	out.Text = strings.Join(parts, "\n")
	if out.Text == "" && out.Image == nil {
		return normalizedInput{}, schedule.ErrNoInput
	}
	return out, nil
}

// transcribe returns "" when there is no audio, no transcriber or the call failed.
func (uc *implUseCase) transcribe(ctx context.Context, audio []byte, name string) string {
	if len(audio) == 0 {
		return ""
	}
	if uc.transcriber == nil {
		uc.l.Warnf(ctx, "normalize: voice input ignored, no transcriber configured")
		return ""
	}
	if name == "" {
		name = "voice" + mimetype.Detect(audio).Extension()
	}

	transcript, err := uc.transcriber.Transcribe(ctx, audio, name)
	if err != nil {
		uc.l.Warnf(ctx, "normalize: transcription failed: %v", err)
		return ""
	}
	return strings.TrimSpace(transcript)
}

// ocr asks the model to read the image verbatim. Failures are logged and yield "".
func (uc *implUseCase) ocr(ctx context.Context, image []byte, mime string) string {
	resp, err := uc.llm.GenerateContent(ctx, gemini.GenerateRequest{
		Contents: []gemini.Content{{
			Parts: []gemini.Part{
				{Text: gemini.OCRPrompt},
				{InlineData: &gemini.InlineData{MimeType: mime, Data: base64.StdEncoding.EncodeToString(image)}},
			},
		}},
	})
	if err != nil {
		uc.l.Warnf(ctx, "normalize: OCR request failed: %v", err)
		return ""
	}

	text, err := resp.FirstText()
	if err != nil {
		uc.l.Warnf(ctx, "normalize: OCR returned no text: %v", err)
		return ""
	}
	return strings.TrimSpace(text)
}

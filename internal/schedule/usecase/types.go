package usecase

// normalizedInput is what the extractor sees after media handling.
type normalizedInput struct {
	Text      string
	Image     []byte
	ImageMIME string
}

package nodes

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/tmc/langchaingo/documentloaders"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/textsplitter"

	"github.com/convoflow/convoflow/pkg/types"
	"github.com/convoflow/convoflow/pkg/workflow"
)

// DocumentLoaderNode reads a previously uploaded file from disk and emits its
// text content. Binary formats without a loader (docx and friends) are
// rejected up front rather than producing garbage text.
type DocumentLoaderNode struct{}

type loaderConfig struct {
	UploadedFile string `mapstructure:"uploaded_file"`
	FileType     string `mapstructure:"file_type"`
	ChunkSize    int    `mapstructure:"chunk_size"`
}

func (n *DocumentLoaderNode) Contract() workflow.Contract {
	return workflow.Contract{
		Type: "documentloadernode",
		Outputs: []workflow.HandleSpec{
			{Name: "text", Kind: workflow.KindText},
			{Name: "metadata", Kind: workflow.KindObject},
		},
	}
}

func (n *DocumentLoaderNode) Execute(ctx context.Context, req Request) (types.NodeResult, error) {
	cfg := loaderConfig{FileType: "auto", ChunkSize: 1000}
	if err := decodeConfig(req.Config, &cfg); err != nil {
		return types.NodeResult{}, err
	}
	if cfg.UploadedFile == "" {
		return types.NodeResult{}, &EvaluationError{Detail: "no uploaded file configured"}
	}

	fileType := strings.ToLower(cfg.FileType)
	if fileType == "" || fileType == "auto" {
		fileType = strings.TrimPrefix(strings.ToLower(filepath.Ext(cfg.UploadedFile)), ".")
	}

	docs, err := loadDocuments(ctx, cfg.UploadedFile, fileType)
	if err != nil {
		return types.NodeResult{}, err
	}

	var parts []string
	for _, doc := range docs {
		if doc.PageContent != "" {
			parts = append(parts, doc.PageContent)
		}
	}
	text := strings.Join(parts, "\n\n")

	if cfg.ChunkSize > 0 && len(text) > cfg.ChunkSize {
		splitter := textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(cfg.ChunkSize),
			textsplitter.WithChunkOverlap(cfg.ChunkSize/10),
		)
		chunks, err := splitter.SplitText(text)
		if err != nil {
			return types.NodeResult{}, errors.Wrap(err, "splitting document text")
		}
		text = strings.Join(chunks, "\n\n")
	}

	return result(map[string]any{
		"text": text,
		"metadata": map[string]any{
			"file_name": filepath.Base(cfg.UploadedFile),
			"file_type": fileType,
			"documents": len(docs),
			"characters": len(text),
		},
	}), nil
}

func loadDocuments(ctx context.Context, path, fileType string) ([]schema.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening uploaded file")
	}
	defer f.Close()

	switch fileType {
	case "pdf":
		info, err := f.Stat()
		if err != nil {
			return nil, errors.Wrap(err, "reading uploaded file size")
		}
		return documentloaders.NewPDF(f, info.Size()).Load(ctx)
	case "csv":
		return documentloaders.NewCSV(f).Load(ctx)
	case "txt", "md", "text", "markdown":
		return documentloaders.NewText(f).Load(ctx)
	default:
		return nil, &UnsupportedFormatError{Format: fileType}
	}
}

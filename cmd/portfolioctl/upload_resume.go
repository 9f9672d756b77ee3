package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vs-portfolio/portfolio/internal/server"
	"github.com/vs-portfolio/portfolio/internal/service"
)

func newUploadResumeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "upload-resume <file.pdf>",
		Short: "Replace the stored résumé with a local PDF",
		Long: `Replace the stored résumé with a local PDF. The same checks as the
dashboard apply: the file must be a non-empty PDF within the upload limit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			info, err := f.Stat()
			if err != nil {
				return err
			}
			contentType, err := sniff(f)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			repo, err := server.ResumeRepository(a.cfg, store)
			if err != nil {
				return err
			}

			resumes := service.NewResumeService(repo, a.cfg.Resume.MaxUploadBytes, a.logger)
			stored, err := resumes.Upload(ctx, service.ResumeUpload{
				FileName:    filepath.Base(path),
				ContentType: contentType,
				Size:        info.Size(),
				Content:     f,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s (%d bytes).\n", stored.FileName, len(stored.Content))
			return nil
		},
	}
}

// sniff detects the content type from the first bytes of f and rewinds it.
func sniff(f io.ReadSeeker) (string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	return http.DetectContentType(head[:n]), nil
}

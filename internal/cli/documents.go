package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"docuquery/internal/common"
	"docuquery/internal/filex"
	"docuquery/internal/models"
	"docuquery/internal/pdfx"
)

// osOpen is a test seam for os.Open.
var osOpen = os.Open

const recentCount = 5

func formatDoc(d *models.Document) string {
	star := " "
	if d.Starred {
		star = "*"
	}
	s := fmt.Sprintf("%4d %s %-30s %3d pages  %s", d.ID, star, d.Name, d.PageCount, d.Folder)
	if d.EditedVersion != "" {
		s += "  (edited)"
	}
	return s
}

func (a *App) printDocs(docs []models.Document) {
	if len(docs) == 0 {
		printlnFn("No documents")
		return
	}
	for i := range docs {
		printlnFn(formatDoc(&docs[i]))
	}
}

// List re-fetches the collection from the backend and prints it. When the
// backend is unreachable the last known copy is printed instead.
func (a *App) List(ctx context.Context) error {
	a.refreshDocuments(ctx)
	a.printDocs(a.docs.Documents())
	return nil
}

func (a *App) Recent(ctx context.Context) error {
	a.printDocs(a.docs.Recent(recentCount))
	return nil
}

func (a *App) Starred(ctx context.Context) error {
	a.printDocs(a.docs.Starred())
	return nil
}

func (a *App) Folders(ctx context.Context) error {
	folders := a.docs.Folders()
	if len(folders) == 0 {
		printlnFn("No folders")
		return nil
	}
	for _, f := range folders {
		printlnFn(fmt.Sprintf("%-20s %d", f, len(a.docs.ByFolder(f))))
	}
	return nil
}

// Upload validates the file locally, sends it to the backend and adds the
// returned document to the collection. The page count comes from the local
// file, the backend does not report it.
func (a *App) Upload(ctx context.Context, path string) error {
	size, err := pdfx.ValidateUpload(path)
	if err != nil {
		printlnFn("Cannot upload:", err.Error())
		return err
	}

	file, err := osOpen(path)
	if err != nil {
		printlnFn("Cannot upload:", err.Error())
		return err
	}
	defer file.Close()

	rec, err := a.api.UploadPDF(ctx, filepath.Base(path), file)
	if err != nil {
		printlnFn("Upload failed:", err.Error())
		return err
	}

	doc := &models.Document{
		ID:        rec.ID,
		Name:      rec.Filename,
		FilePath:  rec.FilePath,
		Size:      size,
		PageCount: pdfx.PageCount(path),
		Folder:    common.DefaultFolder,
		CreatedAt: rec.UploadDate,
		UpdatedAt: rec.UploadDate,
	}
	if err := a.docs.Add(ctx, doc); err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Uploaded %s (%d pages)", doc.Name, doc.PageCount))
	return nil
}

func (a *App) Star(ctx context.Context, id int64) error {
	starred, err := a.docs.ToggleStar(ctx, id)
	if err != nil {
		printlnFn("Star failed:", err.Error())
		return err
	}
	if starred {
		printlnFn("Starred")
	} else {
		printlnFn("Unstarred")
	}
	return nil
}

func (a *App) Move(ctx context.Context, id int64, folder string) error {
	if err := a.docs.MoveToFolder(ctx, id, folder); err != nil {
		printlnFn("Move failed:", err.Error())
		return err
	}
	printlnFn("Moved to", folder)
	return nil
}

func (a *App) Delete(ctx context.Context, id int64) error {
	if err := a.docs.Delete(ctx, id); err != nil {
		printlnFn("Delete failed:", err.Error())
		return err
	}
	printlnFn("Deleted")
	return nil
}

// Download saves the document into the configured download directory.
// When an edited version exists it takes precedence over the original.
func (a *App) Download(ctx context.Context, id int64) error {
	doc, err := a.docs.GetByID(id)
	if err != nil {
		printlnFn("Download failed:", err.Error())
		return err
	}

	url := doc.EditedVersion
	if url == "" {
		url = doc.FilePath
	}

	dir, err := filex.EnsureSubDir(a.config.DownloadDir)
	if err != nil {
		return err
	}
	dest := filepath.Join(dir, doc.Name)

	if err := a.api.DownloadFile(ctx, url, dest); err != nil {
		printlnFn("Download failed:", err.Error())
		return err
	}

	printlnFn("Saved to", dest)
	return nil
}

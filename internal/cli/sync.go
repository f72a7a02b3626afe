package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"docuquery/internal/cloudsync"
	"docuquery/internal/filex"
)

// Sync copies every file from the download directory to the configured
// cloud storage, each under a per-user key. It does nothing when sync is
// not configured.
func (a *App) Sync(ctx context.Context) error {
	if a.uploader == nil {
		printlnFn("Cloud sync is not configured")
		return nil
	}

	user := a.auth.CurrentUser()
	if user == nil {
		printlnFn("Log in first")
		return nil
	}

	dir, err := filex.EnsureSubDir(a.config.DownloadDir)
	if err != nil {
		return err
	}
	files, err := filex.ListFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		printlnFn("Nothing to sync")
		return nil
	}

	synced := 0
	for _, path := range files {
		file, err := osOpen(path)
		if err != nil {
			a.log.Warn(ctx, "skipping file", "path", path, "err", err)
			continue
		}
		key := cloudsync.StorageKey(user.ID, filepath.Base(path))
		err = a.uploader.Upload(ctx, key, file)
		file.Close()
		if err != nil {
			printlnFn("Sync failed:", err.Error())
			return err
		}
		synced++
	}

	printlnFn(fmt.Sprintf("Synced %d file(s)", synced))
	return nil
}

// ToggleTheme flips the persisted dark-mode preference.
func (a *App) ToggleTheme(ctx context.Context) error {
	on, err := a.prefs.ToggleDarkMode(ctx)
	if err != nil {
		return err
	}
	if on {
		printlnFn("Dark mode on")
	} else {
		printlnFn("Dark mode off")
	}
	return nil
}

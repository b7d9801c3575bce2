package uninstall

import (
	"context"
	"fmt"

	"github.com/lakshaymaurya-felt/linmole/internal/core"
	"github.com/lakshaymaurya-felt/linmole/internal/runner"
)

// UninstallApp removes one application using the mechanism it was
// installed with. Package-manager removals run unprivileged and
// surface their own permission errors; AppImages and manual installs
// go through the deletion executor so path validation applies.
func UninstallApp(ctx context.Context, r runner.Runner, exec *core.Executor, app InstalledApp) error {
	switch app.Type {
	case AppDeb:
		_, err := r.Run(ctx, "apt-get", "remove", "-y", app.ID)
		return err
	case AppSnap:
		_, err := r.Run(ctx, "snap", "remove", app.ID)
		return err
	case AppFlatpak:
		_, err := r.Run(ctx, "flatpak", "uninstall", "-y", app.ID)
		return err
	case AppImage, AppManual:
		_, err := exec.SafeDelete(app.Path, false)
		return err
	default:
		return fmt.Errorf("unknown app type %q", app.Type)
	}
}

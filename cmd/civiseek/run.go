package main

import (
	"context"
	"fmt"

	"go.uber.org/fx"
)

// run drives the application until the signal context fires or the app
// requests its own shutdown, then stops it gracefully.
func run(ctx context.Context, app *fx.App) error {
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("start application: %w", err)
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	if err := app.Stop(context.Background()); err != nil {
		return fmt.Errorf("stop application: %w", err)
	}
	return nil
}

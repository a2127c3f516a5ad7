package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/saathi-app/saathi/pkg/domain/interfaces"
	"github.com/saathi-app/saathi/pkg/domain/model"
	"github.com/saathi-app/saathi/pkg/domain/types"
	"github.com/saathi-app/saathi/pkg/utils/async"
	"github.com/saathi-app/saathi/pkg/utils/logging"
	"github.com/saathi-app/saathi/pkg/utils/safe"
	"golang.org/x/sync/errgroup"
)

const exportDataPolicy = "This export contains all your personal data from Saathi. Handle with care."

// AccountUseCase covers the settings-page actions: data export,
// selective clearing, and account deletion.
type AccountUseCase struct {
	repo         interfaces.Repository
	storage      *storage.Client
	exportBucket string
}

func NewAccountUseCase(repo interfaces.Repository, storageClient *storage.Client, exportBucket string) *AccountUseCase {
	return &AccountUseCase{
		repo:         repo,
		storage:      storageClient,
		exportBucket: exportBucket,
	}
}

// ExportProfile is the profile subset safe to hand back to the user.
type ExportProfile struct {
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExportData is the full privacy export of one account.
type ExportData struct {
	Profile      *ExportProfile     `json:"profile"`
	Facts        map[string]any     `json:"facts"`
	MoodEntries  []*model.MoodEntry `json:"moodEntries"`
	ChatMessages []*model.Message   `json:"chatMessages"`
	ExportDate   time.Time          `json:"exportDate"`
	DataPolicy   string             `json:"dataPolicy"`
}

// Export gathers everything stored for the user. When an export
// bucket is configured, a copy is also uploaded to GCS.
func (uc *AccountUseCase) Export(ctx context.Context, userID types.UserID) (*ExportData, error) {
	out := &ExportData{
		ExportDate: time.Now().UTC(),
		DataPolicy: exportDataPolicy,
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		profile, err := uc.repo.Profile().Get(egCtx, userID)
		if err != nil {
			// No-auth users have no profile row.
			return nil
		}
		out.Profile = &ExportProfile{
			UserID:      profile.UserID.String(),
			Email:       profile.Email,
			DisplayName: profile.DisplayName,
			CreatedAt:   profile.CreatedAt,
		}
		return nil
	})
	eg.Go(func() error {
		facts, err := uc.repo.Fact().Get(egCtx, userID)
		if err != nil {
			return err
		}
		out.Facts = make(map[string]any, len(facts))
		for key, value := range facts {
			out.Facts[key] = value.Native()
		}
		return nil
	})
	eg.Go(func() error {
		// Zero time lower bound returns the full history.
		var err error
		out.MoodEntries, err = uc.repo.Mood().ListSince(egCtx, userID, time.Time{})
		return err
	})
	eg.Go(func() error {
		var err error
		out.ChatMessages, err = uc.repo.Message().ListAll(egCtx, userID)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "failed to assemble data export")
	}

	if uc.storage != nil && uc.exportBucket != "" {
		if err := uc.uploadExport(ctx, userID, out); err != nil {
			// The user still gets their download.
			logging.From(ctx).Error("failed to upload export", "error", err.Error())
		}
	}

	return out, nil
}

func (uc *AccountUseCase) uploadExport(ctx context.Context, userID types.UserID, data *ExportData) error {
	object := fmt.Sprintf("exports/%s/%s.json", userID, data.ExportDate.Format("2006-01-02T150405Z"))
	w := uc.storage.Bucket(uc.exportBucket).Object(object).NewWriter(ctx)
	w.ContentType = "application/json"

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		safe.Close(ctx, w)
		return goerr.Wrap(err, "failed to write export object",
			goerr.V("bucket", uc.exportBucket), goerr.V("object", object))
	}
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to commit export object",
			goerr.V("bucket", uc.exportBucket), goerr.V("object", object))
	}
	return nil
}

// ClearChat deletes the user's conversation history.
func (uc *AccountUseCase) ClearChat(ctx context.Context, userID types.UserID) error {
	if err := uc.repo.Message().DeleteAll(ctx, userID); err != nil {
		return goerr.Wrap(err, "failed to clear chat history")
	}
	return nil
}

// ClearMemory deletes the user's stored fact set.
func (uc *AccountUseCase) ClearMemory(ctx context.Context, userID types.UserID) error {
	if err := uc.repo.Fact().Delete(ctx, userID); err != nil {
		return goerr.Wrap(err, "failed to clear user memory")
	}
	return nil
}

// Delete removes the account. The profile goes synchronously so the
// email is freed immediately; bulk data cleanup runs detached.
func (uc *AccountUseCase) Delete(ctx context.Context, userID types.UserID) error {
	if err := uc.repo.Profile().Delete(ctx, userID); err != nil {
		// No-auth users have no profile row. Bulk cleanup still runs.
		logging.From(ctx).Warn("failed to delete profile", "error", err.Error())
	}

	async.Dispatch(ctx, func(ctx context.Context) error {
		eg, egCtx := errgroup.WithContext(ctx)
		eg.Go(func() error { return uc.repo.Message().DeleteAll(egCtx, userID) })
		eg.Go(func() error { return uc.repo.Mood().DeleteAll(egCtx, userID) })
		eg.Go(func() error { return uc.repo.Fact().Delete(egCtx, userID) })
		if err := eg.Wait(); err != nil {
			return goerr.Wrap(err, "failed to clean up account data",
				goerr.V("userID", userID))
		}
		return nil
	})

	return nil
}

package task

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	qport "github.com/atef1995/sayarat-sub003/internal/infrastructure/queue/port"
	ownership "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/application/domain"
	"github.com/atef1995/sayarat-sub003/internal/pkg/ownership/application/usecase"
	repoAdapter "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/persistence/repository/adapter"
)

// Task names for membership-change events published by the company membership
// service.
const (
	MemberRemovedTaskType     = "ownership:member_removed"
	MemberReactivatedTaskType = "ownership:member_reactivated"
)

// MembershipEventPayload is the JSON payload transported via the queue. Kept
// decoupled from domain types to avoid tight coupling with JSON tags.
type MembershipEventPayload struct {
	MemberID    string `json:"memberId"`
	CompanyID   string `json:"companyId"`
	PerformedBy string `json:"performedBy"`
}

// RegisterMembershipTasks binds the membership-event handlers to the server.
// Both transfer operations are idempotent, so asynq's retry policy is safe:
// a redelivered removal finds nothing left to move.
func RegisterMembershipTasks(srv qport.Server, pool *pgxpool.Pool, log *slog.Logger) {
	if log == nil {
		log = slog.Default()
	}
	repo := repoAdapter.NewPgOwnershipRepository(pool)

	srv.Register(MemberRemovedTaskType, func(ctx context.Context, t qport.Task) error {
		var p MembershipEventPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		uc := usecase.NewReassignForMemberRemovalUseCase(repo, log)
		out, err := uc.Execute(ctx, usecase.ReassignForMemberRemovalInput{
			MemberID:    p.MemberID,
			CompanyID:   p.CompanyID,
			PerformedBy: p.PerformedBy,
		})
		if err != nil {
			// No eligible handler blocks the removal; keep retrying so the
			// event is not lost while admins fix the handler configuration.
			if errors.Is(err, ownership.ErrNoHandlersAvailable) {
				log.Warn("member removal blocked, will retry",
					"member_id", p.MemberID, "company_id", p.CompanyID)
			}
			return err
		}
		log.Info("member removal processed",
			"member_id", p.MemberID, "transferred", out.TransferredCount, "new_handler_id", out.NewHandlerID)
		return nil
	})

	srv.Register(MemberReactivatedTaskType, func(ctx context.Context, t qport.Task) error {
		var p MembershipEventPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		uc := usecase.NewReassignForMemberReactivationUseCase(repo, log)
		out, err := uc.Execute(ctx, usecase.ReassignForMemberReactivationInput{
			MemberID:    p.MemberID,
			CompanyID:   p.CompanyID,
			PerformedBy: p.PerformedBy,
		})
		if err != nil {
			return err
		}
		log.Info("member reactivation processed",
			"member_id", p.MemberID, "transferred", out.TransferredCount)
		return nil
	})
}

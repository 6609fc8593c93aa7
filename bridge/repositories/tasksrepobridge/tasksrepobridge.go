// Package tasksrepobridge provides the HTTP surface for Task operations.
// Every handler is scoped to the authenticated identity attached by the
// bearer middleware.
package tasksrepobridge

import (
	"context"
	"errors"
	"net/http"

	"github.com/jrazmi/taskflow/bridge/scaffolding/errs"
	"github.com/jrazmi/taskflow/bridge/scaffolding/mid"
	"github.com/jrazmi/taskflow/core/repositories/tasksrepo"
	"github.com/jrazmi/taskflow/infrastructure/web"
)

type bridge struct {
	tasksRepository *tasksrepo.Repository
}

func newBridge(tasksRepository *tasksrepo.Repository) *bridge {
	return &bridge{
		tasksRepository: tasksRepository,
	}
}

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	ident, err := mid.GetIdentity(ctx)
	if err != nil {
		return errs.Newf(errs.Internal, "identity: %s", err)
	}

	tasks, err := b.tasksRepository.List(ctx, ident.ID)
	if err != nil {
		return errs.Newf(errs.Internal, "list: %s", err)
	}

	return web.NewJSONResponse(MarshalListToBridge(tasks))
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	ident, err := mid.GetIdentity(ctx)
	if err != nil {
		return errs.Newf(errs.Internal, "identity: %s", err)
	}

	var input CreateTaskInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	create, err := MarshalCreateToRepository(ident.ID, input)
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "%s", err)
	}

	task, err := b.tasksRepository.Create(ctx, create)
	if err != nil {
		if errors.Is(err, tasksrepo.ErrMissingTitle) {
			return errs.Newf(errs.InvalidArgument, "Title is required")
		}
		return errs.Newf(errs.Internal, "create: %s", err)
	}

	return web.NewJSONResponseWithStatus(MarshalToBridge(task), http.StatusCreated)
}

func (b *bridge) httpUpdate(ctx context.Context, r *http.Request) web.Encoder {
	ident, err := mid.GetIdentity(ctx)
	if err != nil {
		return errs.Newf(errs.Internal, "identity: %s", err)
	}

	taskID := web.Param(r, "task_id")

	var input UpdateTaskInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	changes, err := MarshalUpdateToRepository(input)
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "%s", err)
	}

	task, err := b.tasksRepository.Update(ctx, ident.ID, taskID, changes)
	if err != nil {
		if errors.Is(err, tasksrepo.ErrNotFound) {
			return errs.Newf(errs.NotFound, "Task not found")
		}
		return errs.Newf(errs.Internal, "update: %s", err)
	}

	return web.NewJSONResponse(MarshalToBridge(task))
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	ident, err := mid.GetIdentity(ctx)
	if err != nil {
		return errs.Newf(errs.Internal, "identity: %s", err)
	}

	taskID := web.Param(r, "task_id")

	if err := b.tasksRepository.Delete(ctx, ident.ID, taskID); err != nil {
		if errors.Is(err, tasksrepo.ErrNotFound) {
			return errs.Newf(errs.NotFound, "Task not found")
		}
		return errs.Newf(errs.Internal, "delete: %s", err)
	}

	// nil encodes as 204 with no body.
	return nil
}

package actions

import (
	"context"
	"fmt"

	"github.com/s0up4200/arrcore/arr"
	"github.com/s0up4200/arrcore/client"
	"github.com/s0up4200/arrcore/endpoint"
)

// Commands starts and inspects background commands.
type Commands struct {
	client client.Requester
}

// All lists recent and running commands.
func (c *Commands) All(ctx context.Context) ([]Command, error) {
	var cmds []Command
	if err := c.client.Get(ctx, endpoint.Command, nil, &cmds); err != nil {
		return nil, fmt.Errorf("failed to list commands: %w", err)
	}
	return cmds, nil
}

// Get returns one command by id.
func (c *Commands) Get(ctx context.Context, id int64) (Command, error) {
	var cmd Command
	if err := c.client.Get(ctx, endpoint.CommandByID, endpoint.Params{"id": id}, &cmd); err != nil {
		return Command{}, fmt.Errorf("failed to get command %d: %w", id, err)
	}
	return cmd, nil
}

// Run queues command name with the extra body fields. A "name" key in body
// is ignored.
func (c *Commands) Run(ctx context.Context, name arr.CommandName, body endpoint.Params) (Command, error) {
	payload := body.Merge(endpoint.Params{"name": name.String()})

	var cmd Command
	if err := c.client.Post(ctx, endpoint.Command, payload, &cmd); err != nil {
		return Command{}, fmt.Errorf("failed to run command %s: %w", name, err)
	}
	return cmd, nil
}

// Cancel stops a queued command.
func (c *Commands) Cancel(ctx context.Context, id int64) error {
	if err := c.client.Delete(ctx, endpoint.CommandByID, endpoint.Params{"id": id}, nil); err != nil {
		return fmt.Errorf("failed to cancel command %d: %w", id, err)
	}
	return nil
}

func (c *Commands) RSSSync(ctx context.Context) (Command, error) {
	return c.Run(ctx, arr.CommandRssSync, nil)
}

func (c *Commands) Backup(ctx context.Context) (Command, error) {
	return c.Run(ctx, arr.CommandBackup, nil)
}

// RenameFiles renames the given files of a movie.
func (c *Commands) RenameFiles(ctx context.Context, movieID int64, fileIDs []int64) (Command, error) {
	return c.Run(ctx, arr.CommandRenameFiles, endpoint.Params{
		"movieId": movieID,
		"files":   fileIDs,
	})
}

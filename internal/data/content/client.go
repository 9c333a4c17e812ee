package content

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Client struct {
	mc *mongo.Client
	DB *mongo.Database
}

// Connect opens the content store. Reads go to secondaries when available.
func Connect(ctx context.Context, uri, database string) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetReadPreference(readpref.SecondaryPreferred()).
		SetAppName("fairway-booking")

	mc, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := mc.Ping(ctx, readpref.Primary()); err != nil {
		_ = mc.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Client{mc: mc, DB: mc.Database(database)}, nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.mc.Ping(ctx, nil)
}

func (c *Client) Close(ctx context.Context) error {
	return c.mc.Disconnect(ctx)
}

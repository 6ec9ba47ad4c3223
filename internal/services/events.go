package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"

	"elibrary/internal/storage"
	"elibrary/pkg/rabbitmq"
)

// publishEvent sends a catalog event if an MQ client is configured. Event
// delivery is best effort; a broker outage never fails the request that
// triggered it.
func publishEvent(mq *rabbitmq.Client, event string, payload map[string]interface{}) {
	if mq == nil {
		log.Println("RabbitMQ client is not initialized. Skipping message publication.")
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event to JSON: %v", event, err)
		return
	}
	if err := mq.Publish(event, body); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", event, err)
	}
}

// storeUpload streams one multipart upload slot into the blob store and
// returns the resulting reference. The request context bounds the disk write.
func storeUpload(ctx context.Context, blobs *storage.BlobStore, slot string, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open %s upload: %w", slot, err)
	}
	defer f.Close()

	return blobs.Store(ctx, slot, fh.Filename, f)
}

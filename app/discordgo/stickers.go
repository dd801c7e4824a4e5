package discord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/bwmarrin/discordgo"
)

// StickerParams is the form body of a guild sticker upload.
type StickerParams struct {
	Name        string
	Description string
	Tags        string
	File        *discordgo.File
}

// GuildStickers lists the custom stickers of a guild.
func (d *DiscordSession) GuildStickers(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Sticker, error) {
	endpoint := discordgo.EndpointGuildStickers(guildID)

	var stickers []*discordgo.Sticker
	err := d.retryRead("guild_stickers", options, func() error {
		body, err := d.session.RequestWithBucketID(http.MethodGet, endpoint, nil, endpoint, options...)
		if err != nil {
			return err
		}
		return json.Unmarshal(body, &stickers)
	})
	return stickers, err
}

// GuildStickerCreate uploads a sticker. The endpoint takes plain multipart form
// fields rather than a payload_json part.
func (d *DiscordSession) GuildStickerCreate(guildID string, data *StickerParams, options ...discordgo.RequestOption) (*discordgo.Sticker, error) {
	contentType, body, err := stickerMultipartBody(data)
	if err != nil {
		return nil, err
	}

	endpoint := discordgo.EndpointGuildStickers(guildID)
	bucket := d.session.Ratelimiter.LockBucket(endpoint)
	resp, err := d.session.RequestWithLockedBucket(http.MethodPost, endpoint, contentType, body, bucket, 0, options...)
	if err != nil {
		return nil, err
	}

	var sticker discordgo.Sticker
	if err := json.Unmarshal(resp, &sticker); err != nil {
		return nil, fmt.Errorf("failed to decode sticker: %w", err)
	}
	return &sticker, nil
}

// GuildStickerDelete removes a sticker.
func (d *DiscordSession) GuildStickerDelete(guildID, stickerID string, options ...discordgo.RequestOption) error {
	endpoint := discordgo.EndpointGuildSticker(guildID, stickerID)
	_, err := d.session.RequestWithBucketID(http.MethodDelete, endpoint, nil, discordgo.EndpointGuildStickers(guildID), options...)
	return err
}

func stickerMultipartBody(data *StickerParams) (string, []byte, error) {
	if data == nil || data.File == nil || data.File.Reader == nil {
		return "", nil, fmt.Errorf("sticker file is required")
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, field := range []struct{ name, value string }{
		{"name", data.Name},
		{"description", data.Description},
		{"tags", data.Tags},
	} {
		if err := w.WriteField(field.name, field.value); err != nil {
			return "", nil, fmt.Errorf("failed to write sticker field %s: %w", field.name, err)
		}
	}

	contentType := data.File.ContentType
	if contentType == "" {
		contentType = "image/png"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, data.File.Name))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create sticker file part: %w", err)
	}
	if _, err := io.Copy(part, data.File.Reader); err != nil {
		return "", nil, fmt.Errorf("failed to write sticker file: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", nil, err
	}
	return w.FormDataContentType(), buf.Bytes(), nil
}

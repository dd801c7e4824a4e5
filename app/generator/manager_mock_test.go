package generator

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/Black-And-White-Club/discord-guild-generator/app/discordgo/mocks"
	"github.com/Black-And-White-Club/discord-guild-generator/app/generator/layout"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/mock/gomock"
)

func expectSnapshot(ms *mocks.MockSession, roles []*discordgo.Role, channels []*discordgo.Channel) {
	ms.EXPECT().IsReady().Return(true)
	ms.EXPECT().Guild(testGuildID, gomock.Any()).Return(&discordgo.Guild{ID: testGuildID, Name: "Test Guild"}, nil)
	ms.EXPECT().GetBotUser().Return(&discordgo.User{ID: testBotID, Username: "builder", Discriminator: "0"}, nil)
	ms.EXPECT().GuildMember(testGuildID, testBotID, gomock.Any()).Return(&discordgo.Member{Roles: []string{"200"}}, nil)
	ms.EXPECT().GuildRoles(testGuildID, gomock.Any()).Return(roles, nil)
	ms.EXPECT().GuildChannels(testGuildID, gomock.Any()).Return(channels, nil)
}

func TestManager_StrictTeardownWithoutExpressions(t *testing.T) {
	ctrl := gomock.NewController(t)
	ms := mocks.NewMockSession(ctrl)

	roles := []*discordgo.Role{
		{ID: testGuildID, Name: "@everyone"},
		{ID: "200", Name: "Bot", Position: 9, Managed: true},
		{ID: "201", Name: "Booster", Position: 3, Managed: true},
		{ID: "202", Name: "old-mod", Position: 2},
	}
	channels := []*discordgo.Channel{
		{ID: "300", Name: "general", Type: discordgo.ChannelTypeGuildText},
		{ID: "301", Name: "thread", Type: discordgo.ChannelTypeGuildPublicThread, ParentID: "300"},
		{ID: "302", Name: "private", Type: discordgo.ChannelTypeGuildPrivateThread, ParentID: "300"},
		{ID: "303", Name: "Lounge", Type: discordgo.ChannelTypeGuildVoice},
	}

	ms.EXPECT().Intents().Return(discordgo.IntentsGuilds)
	expectSnapshot(ms, roles, channels)
	gomock.InOrder(
		ms.EXPECT().GuildRoleDelete(testGuildID, "202", gomock.Any()).Return(nil),
		ms.EXPECT().ChannelDelete("300", gomock.Any()).Return(channels[0], nil),
		ms.EXPECT().ChannelDelete("303", gomock.Any()).Return(channels[3], nil),
	)

	m, _ := newTestManager(t, ms, Options{})
	cfg := &layout.Guild{
		Emojis:   []layout.EmojiSpec{{Name: "wave", Image: pngURI}},
		Stickers: []layout.StickerSpec{{Name: "wave", Tags: "wave", Image: pngURI}},
	}
	if err := m.Generate(context.Background(), testGuildID, cfg, ""); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
}

func TestManager_DeleteFailureStopsTeardown(t *testing.T) {
	ctrl := gomock.NewController(t)
	ms := mocks.NewMockSession(ctrl)

	roles := []*discordgo.Role{
		{ID: testGuildID, Name: "@everyone"},
		{ID: "200", Name: "Bot", Position: 9, Managed: true},
		{ID: "201", Name: "a", Position: 2},
		{ID: "202", Name: "b", Position: 1},
	}
	forbidden := &discordgo.RESTError{
		Response: &http.Response{StatusCode: http.StatusForbidden, Status: "403 Forbidden"},
		Message:  &discordgo.APIErrorMessage{Code: discordgo.ErrCodeMissingPermissions, Message: "Missing Permissions"},
	}

	ms.EXPECT().Intents().Return(discordgo.IntentsGuilds)
	expectSnapshot(ms, roles, nil)
	ms.EXPECT().GuildRoleDelete(testGuildID, "201", gomock.Any()).Return(forbidden)

	m, rec := newTestManager(t, ms, Options{})
	err := m.Generate(context.Background(), testGuildID, &layout.Guild{Roles: []layout.RoleSpec{{Name: "mod"}}}, "")

	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if remote.ID != "201" || remote.Action != ActionDelete {
		t.Errorf("unexpected error %+v", remote)
	}
	if !errors.Is(err, forbidden) {
		t.Error("expected the REST error to be wrapped")
	}
	if len(rec.events) != 1 {
		t.Errorf("expected only the started event, got %v", rec.kinds())
	}
}

package utils

import "testing"

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := GenerateSessionToken("player_abc123")
	if err != nil {
		t.Fatalf("生成 token 失败: %v", err)
	}

	claims, err := ParseSessionToken(token)
	if err != nil {
		t.Fatalf("解析 token 失败: %v", err)
	}
	if claims.PlayerID != "player_abc123" {
		t.Fatalf("玩家 ID 不一致: %s", claims.PlayerID)
	}
}

func TestParseSessionTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseSessionToken("not-a-token"); err == nil {
		t.Fatal("非法 token 应报错")
	}
	if _, err := ParseSessionToken(""); err == nil {
		t.Fatal("空 token 应报错")
	}
}

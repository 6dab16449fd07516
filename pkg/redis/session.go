package redis

import (
	"context"
	"time"

	rd "github.com/redis/go-redis/v9"
)

// Session bearer token 对应的会话信息。
// 身份校验在外部身份源完成，这里只做 token -> email 的映射。
type Session struct {
	Token string
	Email string
}

// PutSession 写入会话并登记到账号的 token 集合，两个 key 同 TTL。
func PutSession(ctx context.Context, rdb *rd.Client, s Session, ttl time.Duration) error {
	pipe := rdb.TxPipeline()
	pipe.HSet(ctx, SessionKey(s.Token), "token", s.Token, "email", s.Email)
	pipe.Expire(ctx, SessionKey(s.Token), ttl)
	pipe.SAdd(ctx, UserSessionsKey(s.Email), s.Token)
	pipe.Expire(ctx, UserSessionsKey(s.Email), ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// GetSession 查询 token 对应会话。found=false 表示已过期或不存在。
func GetSession(ctx context.Context, rdb *rd.Client, token string) (Session, bool, error) {
	m, err := rdb.HGetAll(ctx, SessionKey(token)).Result()
	if err != nil {
		return Session{}, false, err
	}
	if len(m) == 0 || m["email"] == "" {
		return Session{}, false, nil
	}
	return Session{Token: token, Email: m["email"]}, true, nil
}

// DeleteSession 注销单个 token。
func DeleteSession(ctx context.Context, rdb *rd.Client, token, email string) error {
	pipe := rdb.TxPipeline()
	pipe.Del(ctx, SessionKey(token))
	pipe.SRem(ctx, UserSessionsKey(email), token)
	_, err := pipe.Exec(ctx)
	return err
}

// RevokeUserSessions 吊销某账号全部会话，账号被停用时调用。
func RevokeUserSessions(ctx context.Context, rdb *rd.Client, email string) error {
	tokens, err := rdb.SMembers(ctx, UserSessionsKey(email)).Result()
	if err != nil {
		return err
	}
	pipe := rdb.TxPipeline()
	for _, t := range tokens {
		pipe.Del(ctx, SessionKey(t))
	}
	pipe.Del(ctx, UserSessionsKey(email))
	_, err = pipe.Exec(ctx)
	return err
}

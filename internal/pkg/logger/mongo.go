package logger

import (
	"context"
	"fmt"
	log "log/slog"
	"regexp"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/event"
)

const mongoCmdLimit = 1000

// users 集合的写命令带有密码哈希
var mongoPasswordField = regexp.MustCompile(`"password"\s*:\s*"[^"]*"`)

// commandCollection 命令文档的第一个字段是命令名，值为目标集合
func commandCollection(cmd bson.Raw) string {
	elem, err := cmd.IndexErr(0)
	if err != nil {
		return ""
	}
	coll, _ := elem.Value().StringValueOK()
	return coll
}

func redactMongoCommand(cmd string) string {
	cmd = mongoPasswordField.ReplaceAllString(cmd, `"password": "[PROTECTED]"`)
	if len(cmd) > mongoCmdLimit {
		cmd = cmd[:mongoCmdLimit] + "...[truncated]"
	}
	return cmd
}

// NewMongoMonitor 记录命令耗时，完成事件通过 request id 关联到开始时的集合名
func NewMongoMonitor(slowThreshold time.Duration) *event.CommandMonitor {
	if slowThreshold <= 0 {
		slowThreshold = 200 * time.Millisecond
	}
	var collections sync.Map

	takeCollection := func(requestID int64) string {
		v, ok := collections.LoadAndDelete(requestID)
		if !ok {
			return ""
		}
		return v.(string)
	}

	return &event.CommandMonitor{
		Started: func(ctx context.Context, evt *event.CommandStartedEvent) {
			coll := commandCollection(evt.Command)
			collections.Store(evt.RequestID, coll)

			log.InfoContext(ctx, "MongoDB Started",
				log.String("command", evt.CommandName),
				log.String("database", evt.DatabaseName),
				log.String("collection", coll),
				log.String("request_id", fmt.Sprintf("%d", evt.RequestID)),
				log.String("cmd_detail", redactMongoCommand(evt.Command.String())),
			)
		},
		Succeeded: func(ctx context.Context, evt *event.CommandSucceededEvent) {
			fields := []any{
				log.String("command", evt.CommandName),
				log.String("collection", takeCollection(evt.RequestID)),
				log.Duration("latency", evt.Duration),
				log.String("request_id", fmt.Sprintf("%d", evt.RequestID)),
			}

			if evt.Duration > slowThreshold {
				log.WarnContext(ctx, "MongoDB Slow", fields...)
			} else {
				log.InfoContext(ctx, "MongoDB Success", fields...)
			}
		},
		Failed: func(ctx context.Context, evt *event.CommandFailedEvent) {
			log.ErrorContext(ctx, "MongoDB Error",
				log.String("command", evt.CommandName),
				log.String("collection", takeCollection(evt.RequestID)),
				log.Duration("latency", evt.Duration),
				log.String("request_id", fmt.Sprintf("%d", evt.RequestID)),
				log.Any("err", evt.Failure),
			)
		},
	}
}

package service

import (
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/pkg/util"
	"context"
	"time"
)

// untilMidnight 缓存到当天零点前 5 分钟，快照任务在零点后写入新数据
func untilMidnight() time.Duration {
	midnight := util.GetMidnight(time.Now()).AddDate(0, 0, 1)
	return time.Until(midnight) - time.Minute*5
}

func cacheUntilMidnight(ctx context.Context, key string, value any) {
	expiration := untilMidnight()
	if expiration <= 0 {
		return
	}
	_ = redis.SetJSON(ctx, key, value, expiration)
}

// trendDates 从 days-1 天前到今天的日期序列
func trendDates(days int) []time.Time {
	now := time.Now()
	dates := make([]time.Time, 0, days)
	for i := days - 1; i >= 0; i-- {
		dates = append(dates, util.GetMidnight(now.AddDate(0, 0, -i)))
	}
	return dates
}

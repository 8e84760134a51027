// Package seed provides the demo data feed: orders, price catalog, cycle
// customer alerts and past notifications. Order dates are relative to an
// anchor day so the feed stays current.
package seed

import (
	"hash/fnv"
	"math/rand/v2"
	"time"

	"github.com/heyheyboy777/SAD-project/internal/core/domain"
)

var weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Feed returns the full demo data set anchored on the given day.
func Feed(anchor time.Time, seed uint64) domain.Feed {
	return domain.Feed{
		Orders:        Orders(anchor),
		Prices:        Prices(seed),
		Alerts:        ReorderAlerts(),
		Notifications: Notifications(),
	}
}

func Orders(anchor time.Time) []domain.Order {
	day := func(n int) time.Time {
		return domain.DateOf(anchor).AddDate(0, 0, n)
	}
	return []domain.Order{
		{
			ID:             "2025102401",
			CustomerName:   "台灣小吃",
			Items:          []domain.OrderItem{{Item: domain.ItemSquidMedium, Quantity: 15}},
			Status:         domain.OrderStatusApproved,
			DeliveryDate:   day(0),
			Address:        "台北市信義區松山路 123 號",
			SubmissionTime: "2025-10-23 14:30",
		},
		{
			ID:           "2025102402",
			CustomerName: "日料店",
			Items: []domain.OrderItem{
				{Item: domain.ItemSmallSquid, Quantity: 5},
				{Item: domain.ItemSoftCuttlefish, Quantity: 5},
			},
			Status:         domain.OrderStatusApproved,
			DeliveryDate:   day(0),
			Address:        "台北市大安區忠孝東路四段 55 號",
			SubmissionTime: "2025-10-23 20:15",
		},
		{
			ID:           "2025102403",
			CustomerName: "飽處",
			Items: []domain.OrderItem{
				{Item: domain.ItemBigSquid, Quantity: 10},
				{Item: domain.ItemOctopus, Quantity: 10},
			},
			Status:         domain.OrderStatusApproved,
			DeliveryDate:   day(1),
			Address:        "新北市板橋區文化路一段 20 號",
			SubmissionTime: "2025-10-24 09:00",
		},
		{
			ID:             "2025102404",
			CustomerName:   "鍋台銘",
			Items:          []domain.OrderItem{{Item: domain.ItemCuttlefishBallMed, Quantity: 20}},
			Status:         domain.OrderStatusApproved,
			DeliveryDate:   day(2),
			Address:        "台北市內湖區瑞光路 500 號",
			SubmissionTime: "2025-10-23 11:45",
		},
		{
			ID:           "2025102405",
			CustomerName: "山海珍",
			Items: []domain.OrderItem{
				{Item: domain.ItemOctopus, Quantity: 15},
				{Item: domain.ItemBigSquid, Quantity: 10},
			},
			Status:         domain.OrderStatusPending,
			DeliveryDate:   day(5),
			Address:        "基隆市仁愛區愛三路 88 號",
			SubmissionTime: "2025-10-24 13:20",
		},
		{
			ID:           "2025102406",
			CustomerName: "品味格",
			Items: []domain.OrderItem{
				{Item: domain.ItemSmallSquid, Quantity: 10},
				{Item: domain.ItemCuttlefishBallMax, Quantity: 10},
			},
			Status:         domain.OrderStatusPending,
			DeliveryDate:   day(10),
			IsNewCustomer:  true,
			Address:        "台北市士林區文林路 101 號",
			SubmissionTime: "2025-10-24 15:50",
		},
		{
			ID:             "2025102407",
			CustomerName:   "宴飲方",
			Items:          []domain.OrderItem{{Item: domain.ItemSquidMedium, Quantity: 20}},
			Status:         domain.OrderStatusPending,
			DeliveryDate:   day(13),
			Address:        "新北市新莊區中正路 330 號",
			SubmissionTime: "2025-10-24 16:10",
		},
	}
}

func Prices(seed uint64) []domain.PriceData {
	entries := []struct {
		item     domain.ItemType
		min, max int
	}{
		{domain.ItemSmallSquid, 220, 240},
		{domain.ItemBigSquid, 260, 300},
		{domain.ItemCuttlefishBallMed, 160, 160},
		{domain.ItemCuttlefishBallHigh, 180, 180},
		{domain.ItemCuttlefishBallMax, 270, 270},
		{domain.ItemSquidMedium, 260, 350},
		{domain.ItemOctopus, 180, 260},
		{domain.ItemSoftCuttlefish, 280, 280},
	}

	prices := make([]domain.PriceData, 0, len(entries))
	for _, e := range entries {
		prices = append(prices, domain.PriceData{
			Item:     e.item,
			MinPrice: e.min,
			MaxPrice: e.max,
			History:  priceHistory(seed, e.item, e.min),
		})
	}
	return prices
}

// priceHistory spreads a week of quotes within ±20 of base.
func priceHistory(seed uint64, item domain.ItemType, base int) []domain.PricePoint {
	f := fnv.New64a()
	f.Write([]byte(item))
	r := rand.New(rand.NewPCG(seed, f.Sum64()))

	points := make([]domain.PricePoint, 0, len(weekdays))
	for _, d := range weekdays {
		points = append(points, domain.PricePoint{Label: d, Price: base + r.IntN(40) - 20})
	}
	return points
}

func ReorderAlerts() []domain.ReorderAlert {
	return []domain.ReorderAlert{
		{
			CustomerName:  "海鮮餐廳",
			DaysRemaining: 2,
			AutoSendTime:  "10:00 AM",
			UsualOrderItems: []domain.OrderItem{
				{Item: domain.ItemBigSquid, Quantity: 20},
				{Item: domain.ItemOctopus, Quantity: 10},
			},
		},
		{
			CustomerName:    "私廚",
			DaysRemaining:   1,
			AutoSendTime:    "09:30 AM",
			UsualOrderItems: []domain.OrderItem{{Item: domain.ItemSoftCuttlefish, Quantity: 10}},
		},
		{
			CustomerName:    "馬可波羅",
			DaysRemaining:   0,
			AutoSendTime:    "08:00 AM",
			UsualOrderItems: []domain.OrderItem{{Item: domain.ItemSmallSquid, Quantity: 30}},
		},
	}
}

func Notifications() []domain.Notification {
	return []domain.Notification{
		{
			ID:            "1",
			CustomerName:  "小劉",
			Type:          domain.NotificationHoliday,
			ScheduledTime: "11/22 7:59 AM",
			Details:       "節慶提醒",
			Status:        domain.NotificationSent,
			Email:         "liu_restaurant@gmail.com",
			SendType:      "節慶活動",
			ContentBody:   "親愛的小劉老闆，元旦假期將至，市場預計需求量大增。建議您提早備貨小花枝與軟絲，我們已為您保留部分額度，請盡快確認訂單。",
		},
		{
			ID:            "2",
			CustomerName:  "郭台銘",
			Type:          domain.NotificationHoliday,
			ScheduledTime: "11/22 7:59 AM",
			Details:       "節慶提醒",
			Status:        domain.NotificationSent,
			Email:         "kuo_hotpot@foxconn.com",
			SendType:      "節慶活動",
			ContentBody:   "郭老闆您好，佳節愉快！感謝您對我們海鮮的支持。因應節日，花枝丸系列目前供應緊張，建議您於本週五前下單以確保供貨無虞。",
		},
		{
			ID:            "3",
			CustomerName:  "陳先生",
			Type:          domain.NotificationReorder,
			ScheduledTime: "11/22 7:59 AM",
			Details:       "週期提醒",
			Status:        domain.NotificationSent,
			Email:         "chen_seafood@yahoo.com.tw",
			SendType:      "訂貨週期",
			ContentBody:   "陳大哥您好，系統顯示您的庫存週期將近，依照往例您可能需要補貨透抽(中卷)約 20 斤。是否照常幫您安排配送？",
		},
	}
}

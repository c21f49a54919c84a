package service

import (
	"github.com/shopspring/decimal"

	"basket-service/internal/basket/model"
)

// QuoteCart: стоимость корзины в каждом магазине-кандидате по отдельности.
// Магазин без части товаров тоже попадает в список (Complete=false, в Missing то, чего нет);
// Cheapest выбирается только среди магазинов, где есть всё.
func QuoteCart(lines []model.CartLine, prices PriceTable) (*model.Quote, error) {
	m, err := prepareCart(lines, prices)
	if err != nil {
		return nil, err
	}
	q := &model.Quote{Stores: make([]model.StoreQuote, 0, len(m.stores))}
	for s, store := range m.stores {
		sq := model.StoreQuote{Store: store, Total: decimal.Zero}
		for i, l := range m.lines {
			if !m.has[i][s] {
				sq.Missing = append(sq.Missing, l.Name)
				continue
			}
			sq.Total = sq.Total.Add(m.cost[i][s])
		}
		sq.Complete = len(sq.Missing) == 0
		if sq.Complete && (q.Cheapest == nil || sq.Total.LessThan(q.Cheapest.Total)) {
			q.Cheapest = &model.StoreTotal{Store: store, Total: sq.Total}
		}
		q.Stores = append(q.Stores, sq)
	}
	return q, nil
}

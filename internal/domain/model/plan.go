package model

// Plan describes a purchasable membership tier.
type Plan struct {
	GoodsID int64
	Name    string
	Level   int
	Price   float64
}

// MinimumCharge is the smallest non-zero amount the gateway accepts.
const MinimumCharge = 0.01

// PlanCatalog holds the fixed set of membership plans offered for sale.
type PlanCatalog struct {
	plans []Plan
}

// NewPlanCatalog builds catalog from the provided plans.
func NewPlanCatalog(plans []Plan) *PlanCatalog {
	return &PlanCatalog{plans: plans}
}

// DefaultPlanCatalog returns the tiers currently on offer.
func DefaultPlanCatalog() *PlanCatalog {
	return NewPlanCatalog([]Plan{
		{GoodsID: 1, Name: "Monthly", Level: 1, Price: 19.9},
		{GoodsID: 2, Name: "Seasonal", Level: 2, Price: 49.9},
		{GoodsID: 3, Name: "Annual", Level: 3, Price: 149.9},
	})
}

// Plans returns all plans in catalog order.
func (c *PlanCatalog) Plans() []Plan {
	out := make([]Plan, len(c.plans))
	copy(out, c.plans)
	return out
}

// ByGoodsID finds a plan by its goods identifier.
func (c *PlanCatalog) ByGoodsID(goodsID int64) (Plan, bool) {
	for _, p := range c.plans {
		if p.GoodsID == goodsID {
			return p, true
		}
	}
	return Plan{}, false
}

// PriceOfLevel returns the price of the plan holding the given level,
// zero when no plan matches (free tier).
func (c *PlanCatalog) PriceOfLevel(level int) float64 {
	for _, p := range c.plans {
		if p.Level == level {
			return p.Price
		}
	}
	return 0
}

// UpgradePrice computes the charge for moving from the current level to the
// target plan. The difference is floored at the minimum non-zero charge.
func (c *PlanCatalog) UpgradePrice(currentLevel int, target Plan) float64 {
	diff := target.Price - c.PriceOfLevel(currentLevel)
	if diff <= 0 {
		return MinimumCharge
	}
	return diff
}

package handler

const (
	startMessage = `👋 <b>PoolPower ops</b>

/deals - active deals
/sync - import the Deals sheet now
/link <code>DEAL-ID</code> <code>QTY</code> - build a pool link`

	dealsEmpty        = "📭 No active deals."
	dealsError        = "❌ Could not load deals."
	dealsPageHeader   = "🛒 <b>Active deals</b> (page %d/%d)\n\n"
	dealsItemTemplate = "• <b>%s</b> <code>%s</code>\n   Target: %s, KSh %s\n"

	syncQueued        = "🔄 Catalog sync queued (<code>%s</code>). A report follows when it is done."
	syncAlreadyQueued = "⏳ A catalog sync is already queued."
	syncError         = "❌ Could not queue a catalog sync."

	linkUsage       = "❌ Usage: /link <code>DEAL-ID</code> <code>QTY</code>"
	linkUnknownDeal = "⚠️ Deal <code>%s</code> is not on the page."
	linkError       = "❌ Could not build the link."
)

package entities

// Static symbol classification for the assets the add forms offer.
// Metadata here is authoritative for the native trading currency; the
// provider is only consulted for symbols added as free text.

// Market labels used in the equity catalog
const (
	MarketUS        = "US"
	MarketEU        = "EU"
	MarketCommodity = "COMMODITY"
)

// SupportedCurrencies are the purchase currencies the forms accept
var SupportedCurrencies = []string{"EUR", "USD", "GBP"}

// CurrencySymbols maps currency codes to their display glyphs
var CurrencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// EquityCatalog covers stocks, indices and commodities offered in the
// add-equity dropdown, keyed by ticker.
var EquityCatalog = map[string]CatalogEntry{
	"^DJI":    {Symbol: "^DJI", Name: "Dow Jones Industrial Average", Currency: "USD", Market: MarketUS},
	"^GSPC":   {Symbol: "^GSPC", Name: "S&P 500", Currency: "USD", Market: MarketUS},
	"^IXIC":   {Symbol: "^IXIC", Name: "NASDAQ Composite", Currency: "USD", Market: MarketUS},
	"GC=F":    {Symbol: "GC=F", Name: "Gold Futures", Currency: "USD", Market: MarketCommodity},
	"AAPL":    {Symbol: "AAPL", Name: "Apple Inc.", Currency: "USD", Market: MarketUS},
	"NVDA":    {Symbol: "NVDA", Name: "NVIDIA Corporation", Currency: "USD", Market: MarketUS},
	"ASML":    {Symbol: "ASML", Name: "ASML Holding N.V.", Currency: "EUR", Market: MarketEU},
	"GOOGL":   {Symbol: "GOOGL", Name: "Alphabet Inc.", Currency: "USD", Market: MarketUS},
	"MSFT":    {Symbol: "MSFT", Name: "Microsoft Corporation", Currency: "USD", Market: MarketUS},
	"AIR.PA":  {Symbol: "AIR.PA", Name: "Airbus SE", Currency: "EUR", Market: MarketEU},
	"BNP.PA":  {Symbol: "BNP.PA", Name: "BNP Paribas", Currency: "EUR", Market: MarketEU},
	"SAN.MC":  {Symbol: "SAN.MC", Name: "Banco Santander", Currency: "EUR", Market: MarketEU},
	"MBG.DE":  {Symbol: "MBG.DE", Name: "Mercedes-Benz Group AG", Currency: "EUR", Market: MarketEU},
	"NKE":     {Symbol: "NKE", Name: "Nike Inc.", Currency: "USD", Market: MarketUS},
	"TRNS":    {Symbol: "TRNS", Name: "Transcat Inc.", Currency: "USD", Market: MarketUS},
	"AMZN":    {Symbol: "AMZN", Name: "Amazon.com Inc.", Currency: "USD", Market: MarketUS},
	"TSLA":    {Symbol: "TSLA", Name: "Tesla Inc.", Currency: "USD", Market: MarketUS},
	"V":       {Symbol: "V", Name: "Visa Inc.", Currency: "USD", Market: MarketUS},
	"PYPL":    {Symbol: "PYPL", Name: "PayPal Holdings Inc.", Currency: "USD", Market: MarketUS},
	"FDX":     {Symbol: "FDX", Name: "FedEx Corporation", Currency: "USD", Market: MarketUS},
	"UPS":     {Symbol: "UPS", Name: "United Parcel Service Inc.", Currency: "USD", Market: MarketUS},
	"UNH":     {Symbol: "UNH", Name: "UnitedHealth Group Inc.", Currency: "USD", Market: MarketUS},
	"CMCO":    {Symbol: "CMCO", Name: "Columbus McKinnon Corporation", Currency: "USD", Market: MarketUS},
	"MC.PA":   {Symbol: "MC.PA", Name: "LVMH Moët Hennessy Louis Vuitton", Currency: "EUR", Market: MarketEU},
	"CAT":     {Symbol: "CAT", Name: "Caterpillar Inc.", Currency: "USD", Market: MarketUS},
	"BRK-B":   {Symbol: "BRK-B", Name: "Berkshire Hathaway Inc.", Currency: "USD", Market: MarketUS},
	"0HAU.IL": {Symbol: "0HAU.IL", Name: "Hermès International", Currency: "EUR", Market: MarketEU},
	"CAT1.BE": {Symbol: "CAT1.BE", Name: "Caterpillar Inc. (Berlin)", Currency: "EUR", Market: MarketEU},
}

// CryptoCatalog covers the fixed crypto list of the add-crypto form.
// All pairs trade against USD, which is also the only purchase currency
// the crypto form accepts.
var CryptoCatalog = map[string]CatalogEntry{
	"BTC-USD":  {Symbol: "BTC-USD", Name: "Bitcoin", Currency: "USD"},
	"ETH-USD":  {Symbol: "ETH-USD", Name: "Ethereum", Currency: "USD"},
	"USDT-USD": {Symbol: "USDT-USD", Name: "Tether", Currency: "USD"},
	"BNB-USD":  {Symbol: "BNB-USD", Name: "BNB", Currency: "USD"},
	"SOL-USD":  {Symbol: "SOL-USD", Name: "Solana", Currency: "USD"},
	"USDC-USD": {Symbol: "USDC-USD", Name: "USD Coin", Currency: "USD"},
	"XRP-USD":  {Symbol: "XRP-USD", Name: "XRP", Currency: "USD"},
	"TON-USD":  {Symbol: "TON-USD", Name: "Toncoin", Currency: "USD"},
	"ADA-USD":  {Symbol: "ADA-USD", Name: "Cardano", Currency: "USD"},
	"AVAX-USD": {Symbol: "AVAX-USD", Name: "Avalanche", Currency: "USD"},
}

// IsCryptoTicker reports whether the ticker belongs to the crypto partition
func IsCryptoTicker(ticker string) bool {
	_, ok := CryptoCatalog[ticker]
	return ok
}

// ClassifyTicker maps a ticker to its asset kind. Unknown tickers are
// treated as equity-like, matching how free-text adds behave.
func ClassifyTicker(ticker string) AssetKind {
	if IsCryptoTicker(ticker) {
		return AssetKindCrypto
	}
	return AssetKindEquity
}

// CatalogLookup returns the catalog entry for a ticker, if any
func CatalogLookup(ticker string) (CatalogEntry, bool) {
	if entry, ok := EquityCatalog[ticker]; ok {
		return entry, true
	}
	entry, ok := CryptoCatalog[ticker]
	return entry, ok
}

// CatalogName returns the display name for a ticker, or the ticker
// itself when it is not in either catalog.
func CatalogName(ticker string) string {
	if entry, ok := CatalogLookup(ticker); ok {
		return entry.Name
	}
	return ticker
}

// NativeCurrency returns the trading currency for a ticker, or the
// empty string when unknown.
func NativeCurrency(ticker string) string {
	if entry, ok := CatalogLookup(ticker); ok {
		return entry.Currency
	}
	return ""
}

// IsSupportedCurrency reports whether a purchase currency is accepted
func IsSupportedCurrency(code string) bool {
	for _, c := range SupportedCurrencies {
		if c == code {
			return true
		}
	}
	return false
}

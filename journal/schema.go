package journal

const Schema = `
CREATE TABLE IF NOT EXISTS portfolios (
	portfolio_id TEXT PRIMARY KEY,
	equity REAL NOT NULL,
	cash REAL NOT NULL,
	buying_power REAL NOT NULL,
	peak_value REAL NOT NULL,
	drawdown_pct REAL NOT NULL,
	initial_capital REAL NOT NULL,
	trading_paused INTEGER NOT NULL DEFAULT 0,
	paused_reason TEXT NOT NULL DEFAULT '',
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS metrics (
	portfolio_id TEXT NOT NULL,
	period_type TEXT NOT NULL,
	period_date TEXT NOT NULL,
	portfolio_value REAL NOT NULL,
	period_return_pct REAL NOT NULL,
	total_return_pct REAL NOT NULL,
	max_drawdown_pct REAL NOT NULL,
	sharpe_ratio REAL,
	win_rate REAL,
	alpha_pct REAL,
	total_trades INTEGER NOT NULL,
	winning_trades INTEGER NOT NULL,
	losing_trades INTEGER NOT NULL,
	PRIMARY KEY (portfolio_id, period_type, period_date)
);

CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	portfolio_id TEXT NOT NULL,
	symbol TEXT NOT NULL,
	quantity REAL NOT NULL,
	entry_price REAL NOT NULL,
	exit_price REAL NOT NULL,
	realized_pl REAL NOT NULL,
	realized_pl_pct REAL NOT NULL,
	holding_days INTEGER NOT NULL,
	winner INTEGER NOT NULL,
	open_time DATETIME NOT NULL,
	close_time DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_close ON trades(portfolio_id, close_time);

CREATE TABLE IF NOT EXISTS risk_events (
	id TEXT PRIMARY KEY,
	portfolio_id TEXT NOT NULL,
	severity TEXT NOT NULL,
	track TEXT NOT NULL,
	reason TEXT NOT NULL,
	equity REAL NOT NULL,
	peak_value REAL NOT NULL,
	drawdown_pct REAL NOT NULL,
	time DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_risk_events_time ON risk_events(portfolio_id, time);

CREATE TABLE IF NOT EXISTS prices (
	symbol TEXT NOT NULL,
	time DATETIME NOT NULL,
	open REAL NOT NULL,
	high REAL NOT NULL,
	low REAL NOT NULL,
	close REAL NOT NULL,
	volume REAL NOT NULL,
	rsi14 REAL,
	sma20 REAL,
	sma50 REAL,
	sma200 REAL,
	ema12 REAL,
	ema26 REAL,
	macd REAL,
	macd_signal REAL,
	macd_hist REAL,
	PRIMARY KEY (symbol, time)
);
`

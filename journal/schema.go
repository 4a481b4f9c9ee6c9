package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	run_id TEXT NOT NULL,
	order_id INTEGER NOT NULL,
	instrument TEXT NOT NULL,
	direction TEXT NOT NULL,
	volume REAL NOT NULL,
	entry_price REAL NOT NULL,
	exit_price REAL NOT NULL,
	open_time DATETIME NOT NULL,
	close_time DATETIME NOT NULL,
	pnl_pips REAL NOT NULL,
	commission REAL NOT NULL,
	swap REAL NOT NULL,
	net_pnl REAL NOT NULL,
	reason TEXT NOT NULL,
	PRIMARY KEY (run_id, order_id)
);

CREATE TABLE IF NOT EXISTS equity (
	run_id TEXT NOT NULL,
	time DATETIME NOT NULL,
	cash REAL NOT NULL,
	equity REAL NOT NULL,
	open_trades INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	strategy TEXT NOT NULL,
	instrument TEXT NOT NULL,
	dataset TEXT NOT NULL,
	exit_variant TEXT NOT NULL,
	initial_cash REAL NOT NULL,
	final_cash REAL NOT NULL,
	total_return_pct REAL NOT NULL,
	trades INTEGER NOT NULL,
	winners INTEGER NOT NULL,
	losers INTEGER NOT NULL,
	win_rate REAL NOT NULL,
	total_pnl REAL NOT NULL,
	total_commission REAL NOT NULL,
	total_swap REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_equity_time ON equity(time);
CREATE INDEX IF NOT EXISTS idx_trades_close_time ON trades(close_time);
`

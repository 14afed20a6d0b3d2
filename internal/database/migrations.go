package database

type migration struct {
	id   int
	name string
	sql  string
}

var migrations = []migration{
	{
		id:   1,
		name: "generation_runs",
		sql: `
			-- One row per generated board, successful or not
			CREATE TABLE generation_runs (
				seq INTEGER PRIMARY KEY AUTOINCREMENT,
				id TEXT UNIQUE NOT NULL,
				seed INTEGER NOT NULL,
				players INTEGER NOT NULL,
				width INTEGER NOT NULL,
				height INTEGER NOT NULL,
				land_hexes INTEGER NOT NULL DEFAULT 0,
				imbalance INTEGER NOT NULL DEFAULT 0,
				stats_json TEXT NOT NULL DEFAULT '{}',
				error TEXT NOT NULL DEFAULT '',
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX idx_generation_runs_players ON generation_runs(players);
		`,
	},
	{
		id:   2,
		name: "add_land_ratio_column",
		sql: `
			ALTER TABLE generation_runs ADD COLUMN land_ratio REAL NOT NULL DEFAULT 0;
		`,
	},
}

package store

// schema is applied idempotently on every Open.
const schema = `
CREATE TABLE IF NOT EXISTS items (
	id             TEXT PRIMARY KEY,
	learner_id     TEXT NOT NULL,
	simplified     TEXT NOT NULL,
	traditional    TEXT NOT NULL,
	readings       TEXT NOT NULL DEFAULT '[]',
	locked_reading INTEGER NOT NULL DEFAULT -1,
	drills         TEXT NOT NULL DEFAULT '[]',
	created_at     TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);
CREATE INDEX IF NOT EXISTS idx_items_learner ON items (learner_id);

CREATE TABLE IF NOT EXISTS mastery_records (
	learner_id           TEXT NOT NULL,
	item_id              TEXT NOT NULL,
	drill                TEXT NOT NULL,
	first_try_successes  INTEGER NOT NULL DEFAULT 0,
	second_try_successes INTEGER NOT NULL DEFAULT 0,
	consecutive_misses   INTEGER NOT NULL DEFAULT 0,
	last_attempt_at      TEXT NOT NULL DEFAULT '',
	last_success_at      TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (learner_id, item_id, drill)
);

CREATE TABLE IF NOT EXISTS attempts (
	id         TEXT PRIMARY KEY,
	learner_id TEXT NOT NULL,
	item_id    TEXT NOT NULL,
	drill      TEXT NOT NULL,
	outcome    INTEGER NOT NULL,
	points     REAL NOT NULL,
	at         TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_attempts_learner ON attempts (learner_id, at);

CREATE TABLE IF NOT EXISTS word_pairs (
	word           TEXT PRIMARY KEY,
	first_char     TEXT NOT NULL,
	first_reading  TEXT NOT NULL DEFAULT '',
	second_char    TEXT NOT NULL,
	second_reading TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS confusion_tables (
	version INTEGER PRIMARY KEY,
	data    TEXT NOT NULL
);
`

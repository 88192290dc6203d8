package schema

// SchemaSQL contains the full database schema initialization script
const SchemaSQL = `
-- Core Registries (populated by the importer / account system)

CREATE TABLE IF NOT EXISTS users (
    user_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    username VARCHAR(50) UNIQUE NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS games (
    game_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    title VARCHAR(255) NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS platforms (
    platform_id VARCHAR(20) PRIMARY KEY,
    display_name VARCHAR(50) NOT NULL
);

-- Addition Catalog (editions, DLCs, other content per game)
-- Rows come from the metadata importer; only weight and
-- required_for_full are editable through this service.
CREATE TABLE IF NOT EXISTS game_additions (
    addition_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    game_id UUID NOT NULL REFERENCES games(game_id) ON DELETE CASCADE,
    addition_name VARCHAR(255) NOT NULL,
    addition_type VARCHAR(20) NOT NULL CHECK (addition_type IN ('edition', 'dlc', 'other')),
    is_complete_edition BOOLEAN NOT NULL DEFAULT FALSE,
    weight DOUBLE PRECISION NOT NULL DEFAULT 1 CHECK (weight >= 0),
    required_for_full BOOLEAN NOT NULL DEFAULT FALSE,
    release_date TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_game_additions_game ON game_additions(game_id);

-- Ownership: selected edition per (user, game, platform)
CREATE TABLE IF NOT EXISTS ownership_records (
    user_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    game_id UUID NOT NULL REFERENCES games(game_id) ON DELETE CASCADE,
    platform_id VARCHAR(20) NOT NULL REFERENCES platforms(platform_id) ON DELETE RESTRICT,
    edition_id UUID REFERENCES game_additions(addition_id) ON DELETE SET NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (user_id, game_id, platform_id)
);

-- Ownership: per-DLC owned flags (addition implies game)
CREATE TABLE IF NOT EXISTS dlc_ownership (
    user_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    platform_id VARCHAR(20) NOT NULL REFERENCES platforms(platform_id) ON DELETE RESTRICT,
    addition_id UUID NOT NULL REFERENCES game_additions(addition_id) ON DELETE CASCADE,
    owned BOOLEAN NOT NULL DEFAULT FALSE,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (user_id, platform_id, addition_id)
);

-- Completion Log (append-only)
CREATE TABLE IF NOT EXISTS completion_log (
    entry_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    game_id UUID NOT NULL REFERENCES games(game_id) ON DELETE CASCADE,
    platform_id VARCHAR(20) NOT NULL REFERENCES platforms(platform_id) ON DELETE RESTRICT,
    percentage SMALLINT NOT NULL CHECK (percentage BETWEEN 0 AND 100),
    logged_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    notes TEXT
);

CREATE INDEX IF NOT EXISTS idx_completion_log_triple
    ON completion_log(user_id, game_id, platform_id, logged_at DESC);

-- Play Sessions
CREATE TABLE IF NOT EXISTS play_sessions (
    session_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    game_id UUID NOT NULL REFERENCES games(game_id) ON DELETE CASCADE,
    platform_id VARCHAR(20) NOT NULL REFERENCES platforms(platform_id) ON DELETE RESTRICT,
    started_at TIMESTAMPTZ NOT NULL,
    ended_at TIMESTAMPTZ,
    duration_minutes INTEGER,
    notes TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- The single-active-session invariant: at most one open session per
-- user, system-wide. Concurrent starts race on this index and the
-- loser surfaces as a conflict.
CREATE UNIQUE INDEX IF NOT EXISTS uq_play_sessions_one_active
    ON play_sessions(user_id) WHERE ended_at IS NULL;

CREATE INDEX IF NOT EXISTS idx_play_sessions_triple
    ON play_sessions(user_id, game_id, platform_id, started_at DESC);

-- Playtime Aggregate (maintained running total, delta-updated)
CREATE TABLE IF NOT EXISTS playtime_aggregates (
    user_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    game_id UUID NOT NULL REFERENCES games(game_id) ON DELETE CASCADE,
    platform_id VARCHAR(20) NOT NULL REFERENCES platforms(platform_id) ON DELETE RESTRICT,
    total_minutes INTEGER NOT NULL DEFAULT 0 CHECK (total_minutes >= 0),
    last_played TIMESTAMPTZ,
    PRIMARY KEY (user_id, game_id, platform_id)
);

-- Progress Status
CREATE TABLE IF NOT EXISTS progress_status (
    user_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    game_id UUID NOT NULL REFERENCES games(game_id) ON DELETE CASCADE,
    platform_id VARCHAR(20) NOT NULL REFERENCES platforms(platform_id) ON DELETE RESTRICT,
    status VARCHAR(20) NOT NULL DEFAULT 'backlog'
        CHECK (status IN ('backlog', 'playing', 'finished', 'completed', 'dropped')),
    started_at TIMESTAMPTZ,
    completed_at TIMESTAMPTZ,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (user_id, game_id, platform_id)
);
`

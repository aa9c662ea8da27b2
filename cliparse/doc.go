// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse parses server configuration from flags and environment.

Flags win over environment variables; a .env file in the working directory
is loaded first via godotenv, so development setups need no exported vars.

Settings:

  - PORT (-p): listen port, default 8000
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - DATABASE_URL (-d): postgres DSN, or sqlite path (default votiz.db)
  - TOKEN_SECRET (--token-secret): bearer token signing secret, required
  - TOKEN_TTL (--token-ttl): token lifetime, default 24h
*/
package cliparse

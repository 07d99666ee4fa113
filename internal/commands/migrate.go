package commands

import (
	"fmt"
	"log"

	"github.com/pkg/errors"

	"worksite/backend/internal/pkg/repository/postgresql"
)

// ErrHelp provides context that help was given.
var ErrHelp = errors.New("provided help")

type Scheme struct {
	Index       int
	Description string
	Query       string
}

var scheme = []Scheme{
	{
		Index:       1,
		Description: "CREATE TYPE \"user_role\" AS ENUM",
		Query: `
        CREATE TYPE "user_role" AS ENUM ('worker', 'supervisor', 'admin');`,
	},
	{
		Index:       2,
		Description: "CREATE TYPE \"attendance_type\" AS ENUM",
		Query: `
        CREATE TYPE "attendance_type" AS ENUM ('check_in', 'check_out');`,
	},
	{
		Index:       3,
		Description: "Create table: workers.",
		Query: `
        CREATE TABLE IF NOT EXISTS workers (
            id serial primary key,
            full_name text,
            phone varchar(255),
            national_id varchar(50) not null unique,
            password text not null,
            role user_role not null default 'worker',
            active boolean not null default true,
            created_at timestamp default now(),
            created_by int references workers(id),
            updated_at timestamp,
            updated_by int references workers(id)
        );`,
	},
	{
		Index:       4,
		Description: "Create admin with national_id: admin, password: 1",
		Query: `
        INSERT INTO workers(national_id, full_name, role, password)
        SELECT 'admin', 'Administrator', 'admin', '$2a$10$NKtnMwDPFSQLG6uOi4Zqheru5Ygbj9TWFHjpl478rRSaO5cJ9QuH2'
        WHERE NOT EXISTS (SELECT national_id FROM workers WHERE national_id = 'admin');
        `,
	},
	{
		Index:       5,
		Description: "Create table: sites.",
		Query: `
        CREATE TABLE IF NOT EXISTS sites (
            id serial primary key,
            name text not null,
            description text,
            address text,
            latitude double precision not null check (latitude between -90 and 90),
            longitude double precision not null check (longitude between -180 and 180),
            radius int not null default 100 check (radius > 0),
            active boolean not null default true,
            start_date date,
            end_date date,
            created_at timestamp default now(),
            created_by int references workers(id),
            updated_at timestamp,
            updated_by int references workers(id)
        );`,
	},
	{
		Index:       6,
		Description: "Create table: attendance.",
		Query: `
        CREATE TABLE IF NOT EXISTS attendance (
            id serial primary key,
            site_id int not null references sites(id) on delete restrict,
            worker_id int not null references workers(id) on delete restrict,
            event_time timestamp not null default now(),
            type attendance_type not null,
            latitude double precision not null check (latitude between -90 and 90),
            longitude double precision not null check (longitude between -180 and 180),
            phone varchar(255) not null,
            approved boolean not null default false,
            distance int,
            notes text,
            approved_by int references workers(id) on delete set null,
            approved_at timestamp,
            created_at timestamp default now(),
            created_by int references workers(id),
            updated_at timestamp,
            updated_by int references workers(id)
        );`,
	},
	{
		Index:       7,
		Description: "Create indexes for attendance lookups.",
		Query: `
        CREATE INDEX IF NOT EXISTS attendance_worker_event_idx ON attendance (worker_id, event_time);
        CREATE INDEX IF NOT EXISTS attendance_site_idx ON attendance (site_id);
        CREATE INDEX IF NOT EXISTS attendance_pending_idx ON attendance (id) WHERE NOT approved;`,
	},
}

// Migrate creates the scheme in the database.
func Migrate(db *postgresql.Database) {
	for _, s := range scheme {
		if _, err := db.Query(s.Query); err != nil {
			log.Fatalln("migrate error", err)
		}
	}
}

func MigrateUP(db *postgresql.Database) {
	var (
		version int
		dirty   bool
		er      *string
	)
	err := db.QueryRow("SELECT version, dirty, error FROM schema_migrations").Scan(&version, &dirty, &er)
	if err != nil {
		if err.Error() == `ERROR: relation "schema_migrations" does not exist (SQLSTATE=42P01)` {
			if _, err = db.Exec(`
				CREATE TABLE IF NOT EXISTS schema_migrations (version int not null, dirty bool not null, error text);
				DELETE FROM schema_migrations;
				INSERT INTO schema_migrations (version, dirty) values (0, false);
			`); err != nil {
				log.Fatalln("migrate schema_migrations create error", err)
			}
			version = 0
			dirty = false
		} else {
			log.Fatalln("migrate schema_migrations scan: ", err)
		}
	}

	if dirty {
		for _, v := range scheme {
			if v.Index == version {
				if _, err = db.Exec(v.Query); err != nil {
					if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s'`, err.Error())); err != nil {
						log.Fatalln("migrate error", err)
					}
					log.Fatalln(fmt.Sprintf("migrate error version: %d", version), err)
				}
				if _, err = db.Exec(`UPDATE schema_migrations SET dirty = false, error = null`); err != nil {
					log.Fatalln("migrate error", err)
				}
			}
		}
	}

	for _, s := range scheme {
		if s.Index > version {
			if _, err = db.Exec(s.Query); err != nil {
				if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s', version = %d, dirty = true`, err.Error(), s.Index)); err != nil {
					log.Fatalln("migrate error", err)
				}
				log.Fatalln(fmt.Sprintf("migrate error version: %d", s.Index), err)
			}
			if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET version = %d`, s.Index)); err != nil {
				log.Fatalln("migrate error", err)
			}
		}
	}
}

package db

import "database/sql"

// EnsureSchema creates the tables on first boot. The unique key on
// reservations (trip_id, seat_id) is what makes reserve atomic: a concurrent
// duplicate insert fails with error 1062 instead of double-booking. MySQL
// unique keys ignore NULLs, so unseated reservations stack freely.
func EnsureSchema(d *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			phone VARCHAR(50) NOT NULL,
			role VARCHAR(20) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uniq_phone (phone)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

		`CREATE TABLE IF NOT EXISTS bus_types (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			seat_count INT NOT NULL DEFAULT 0,
			grid_rows INT NOT NULL DEFAULT 0,
			left_seats INT NOT NULL DEFAULT 0,
			right_seats INT NOT NULL DEFAULT 0,
			last_row_seats INT NOT NULL DEFAULT 0
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

		`CREATE TABLE IF NOT EXISTS seats (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			bus_type_id BIGINT NOT NULL,
			seat_row INT NOT NULL,
			seat_col INT NOT NULL,
			number INT NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'available',
			UNIQUE KEY uniq_bus_pos (bus_type_id, seat_row, seat_col),
			UNIQUE KEY uniq_bus_number (bus_type_id, number),
			CONSTRAINT fk_seats_bus_type FOREIGN KEY (bus_type_id) REFERENCES bus_types(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

		`CREATE TABLE IF NOT EXISTS trips (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			bus_type_id BIGINT NOT NULL,
			origin_label VARCHAR(255) NOT NULL DEFAULT '',
			destination_label VARCHAR(255) NOT NULL DEFAULT '',
			driver_name VARCHAR(255) NOT NULL DEFAULT '',
			departure_at DATETIME NOT NULL,
			duration_minutes INT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'scheduled',
			created_by BIGINT NOT NULL,
			KEY idx_departure (departure_at),
			CONSTRAINT fk_trips_bus_type FOREIGN KEY (bus_type_id) REFERENCES bus_types(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

		`CREATE TABLE IF NOT EXISTS trip_seats (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			trip_id BIGINT NOT NULL,
			seat_id BIGINT NOT NULL,
			status VARCHAR(20) NOT NULL,
			UNIQUE KEY uniq_trip_seat (trip_id, seat_id),
			CONSTRAINT fk_trip_seats_trip FOREIGN KEY (trip_id) REFERENCES trips(id) ON DELETE CASCADE,
			CONSTRAINT fk_trip_seats_seat FOREIGN KEY (seat_id) REFERENCES seats(id) ON DELETE CASCADE
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

		`CREATE TABLE IF NOT EXISTS reservations (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			trip_id BIGINT NOT NULL,
			seat_id BIGINT NULL,
			passenger_name VARCHAR(255) NOT NULL,
			phone VARCHAR(50) NOT NULL DEFAULT '',
			boarding_point VARCHAR(255) NOT NULL DEFAULT '',
			amount BIGINT NOT NULL DEFAULT 0,
			paid TINYINT(1) NOT NULL DEFAULT 0,
			notes TEXT,
			created_by BIGINT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uniq_trip_seat (trip_id, seat_id),
			KEY idx_trip (trip_id),
			CONSTRAINT fk_reservations_trip FOREIGN KEY (trip_id) REFERENCES trips(id),
			CONSTRAINT fk_reservations_seat FOREIGN KEY (seat_id) REFERENCES seats(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

		`CREATE TABLE IF NOT EXISTS security_logs (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			trip_id BIGINT NOT NULL,
			reservation_id BIGINT NULL,
			national_id VARCHAR(100) NOT NULL DEFAULT '',
			person_name VARCHAR(255) NOT NULL DEFAULT '',
			notes TEXT,
			recorded_by BIGINT NOT NULL,
			recorded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			KEY idx_trip (trip_id),
			KEY idx_recorded (recorded_at),
			CONSTRAINT fk_security_logs_trip FOREIGN KEY (trip_id) REFERENCES trips(id),
			CONSTRAINT fk_security_logs_reservation FOREIGN KEY (reservation_id) REFERENCES reservations(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	}

	for _, ddl := range stmts {
		if _, err := d.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}

package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// Файлы сохранения мира: zstd-сжатый JSON-снимок конфигурации ландшафта
// (включая таблицу биомов). Гриды и ячейки не сохраняются никогда —
// они детерминированно регенерируются из конфигурации и сида.

// SaveSnapshot пишет сжатый снимок атомарно: через временный файл с
// переименованием
func SaveSnapshot(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("ошибка создания директории %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".save-*")
	if err != nil {
		return fmt.Errorf("ошибка создания временного файла: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	enc, err := zstd.NewWriter(tmp, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		tmp.Close()
		return fmt.Errorf("ошибка создания компрессора: %w", err)
	}

	if _, err := enc.Write(data); err != nil {
		enc.Close()
		tmp.Close()
		return fmt.Errorf("ошибка записи снимка: %w", err)
	}
	if err := enc.Close(); err != nil {
		tmp.Close()
		return fmt.Errorf("ошибка завершения сжатия: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("ошибка закрытия файла: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("ошибка переименования снимка: %w", err)
	}
	return nil
}

// LoadSnapshot читает и распаковывает снимок
func LoadSnapshot(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания декомпрессора: %w", err)
	}
	defer dec.Close()

	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения снимка: %w", err)
	}
	return data, nil
}

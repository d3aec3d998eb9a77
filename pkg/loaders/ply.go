package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/funnsam/termray/pkg/core"
	"github.com/funnsam/termray/pkg/material"
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format   string // "ascii", "binary_little_endian" or "binary_big_endian"
	Version  string
	Elements []PLYElement
}

// PLYElement is one "element" block of the header with its properties
type PLYElement struct {
	Name  string
	Count int
	Props []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
	DataType string // For list properties, the type of the data
}

// PLYData contains the raw data loaded from a PLY file
type PLYData struct {
	Vertices []core.Vec3 // Vertex positions
	Faces    []int       // Triangle indices (3 per triangle, polygons fan-triangulated)
	Normals  []core.Vec3 // Per-vertex normals, empty if not present
	Colors   []core.Vec3 // Per-vertex colors normalized to [0,1], empty if not present
}

// plyValueReader yields successive scalar values from the body of a PLY file
type plyValueReader interface {
	read(dataType string) (float64, error)
}

// LoadPLY loads a PLY file and returns the raw vertex and face data
func LoadPLY(filename string) (*PLYData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var values plyValueReader
	switch header.Format {
	case "ascii":
		scanner := bufio.NewScanner(reader)
		scanner.Split(bufio.ScanWords)
		values = &asciiValueReader{scanner: scanner}
	case "binary_little_endian":
		values = &binaryValueReader{r: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryValueReader{r: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %s", header.Format)
	}

	data, err := readPLYBody(header, values)
	if err != nil {
		return nil, fmt.Errorf("failed to read PLY data: %w", err)
	}
	return data, nil
}

// MeshData wraps the PLY geometry as a single group. Per-vertex colors are
// averaged into one diffuse material since the shading model has no textures.
func (p *PLYData) MeshData() *MeshData {
	mat := DefaultMaterial()
	if len(p.Colors) > 0 {
		var sum core.Vec3
		for _, c := range p.Colors {
			sum = sum.Add(c)
		}
		mat = material.NewLambertian(sum.Divide(float64(len(p.Colors))))
	}

	return &MeshData{
		Vertices: p.Vertices,
		Normals:  p.Normals,
		Groups:   []MeshGroup{{Name: "ply", Material: mat, Faces: p.Faces}},
	}
}

// parsePLYHeader consumes the header lines, leaving reader at the first body byte
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	magic, err := reader.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return nil, fmt.Errorf("missing ply magic number")
	}

	header := &PLYHeader{}
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("header ended before end_header: %w", err)
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			if header.Format == "" {
				return nil, fmt.Errorf("header has no format line")
			}
			return header, nil
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid format line: %q", strings.TrimSpace(line))
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element line: %q", strings.TrimSpace(line))
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, fmt.Errorf("property before any element")
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			el := &header.Elements[len(header.Elements)-1]
			el.Props = append(el.Props, prop)
		}
	}
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("invalid property definition")
	}
	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("invalid list property definition")
		}
		return PLYProperty{IsList: true, ListType: parts[1], DataType: parts[2], Name: parts[3]}, nil
	}
	return PLYProperty{Type: parts[0], Name: parts[1]}, nil
}

func readPLYBody(header *PLYHeader, values plyValueReader) (*PLYData, error) {
	data := &PLYData{}
	vertexCount := 0

	for _, el := range header.Elements {
		switch el.Name {
		case "vertex":
			vertexCount = el.Count
			if err := readPLYVertices(el, values, data); err != nil {
				return nil, err
			}
		case "face":
			if err := readPLYFaces(el, values, vertexCount, data); err != nil {
				return nil, err
			}
		default:
			for i := 0; i < el.Count; i++ {
				for _, prop := range el.Props {
					if _, err := readPLYProperty(prop, values); err != nil {
						return nil, fmt.Errorf("element %s %d: %w", el.Name, i, err)
					}
				}
			}
		}
	}

	if len(data.Vertices) == 0 || len(data.Faces) == 0 {
		return nil, fmt.Errorf("PLY file has no triangles")
	}
	return data, nil
}

func readPLYVertices(el PLYElement, values plyValueReader, data *PLYData) error {
	index := make(map[string]int, len(el.Props))
	for i, prop := range el.Props {
		index[prop.Name] = i
	}
	if !hasProps(index, "x", "y", "z") {
		return fmt.Errorf("vertex element needs x, y and z properties")
	}
	hasNormals := hasProps(index, "nx", "ny", "nz")
	hasColors := hasProps(index, "red", "green", "blue")

	row := make([]float64, len(el.Props))
	for i := 0; i < el.Count; i++ {
		for j, prop := range el.Props {
			if prop.IsList {
				if _, err := readPLYProperty(prop, values); err != nil {
					return fmt.Errorf("vertex %d: %w", i, err)
				}
				continue
			}
			v, err := values.read(prop.Type)
			if err != nil {
				return fmt.Errorf("vertex %d: %w", i, err)
			}
			row[j] = v
		}

		data.Vertices = append(data.Vertices, core.NewVec3(row[index["x"]], row[index["y"]], row[index["z"]]))
		if hasNormals {
			data.Normals = append(data.Normals, core.NewVec3(row[index["nx"]], row[index["ny"]], row[index["nz"]]))
		}
		if hasColors {
			color := core.NewVec3(row[index["red"]], row[index["green"]], row[index["blue"]])
			if t := el.Props[index["red"]].Type; t == "uchar" || t == "uint8" {
				color = color.Divide(255)
			}
			data.Colors = append(data.Colors, color)
		}
	}
	return nil
}

func hasProps(index map[string]int, names ...string) bool {
	for _, name := range names {
		if _, ok := index[name]; !ok {
			return false
		}
	}
	return true
}

func readPLYFaces(el PLYElement, values plyValueReader, vertexCount int, data *PLYData) error {
	for i := 0; i < el.Count; i++ {
		for _, prop := range el.Props {
			list, err := readPLYProperty(prop, values)
			if err != nil {
				return fmt.Errorf("face %d: %w", i, err)
			}
			if prop.Name != "vertex_indices" && prop.Name != "vertex_index" {
				continue
			}
			if len(list) < 3 {
				return fmt.Errorf("face %d has %d vertices", i, len(list))
			}
			for _, idx := range list {
				if idx < 0 || int(idx) >= vertexCount {
					return fmt.Errorf("face %d: vertex index %v out of range", i, idx)
				}
			}
			for k := 2; k < len(list); k++ {
				data.Faces = append(data.Faces, int(list[0]), int(list[k-1]), int(list[k]))
			}
		}
	}
	return nil
}

// readPLYProperty reads one property value; scalars come back as a one-element list
func readPLYProperty(prop PLYProperty, values plyValueReader) ([]float64, error) {
	if !prop.IsList {
		v, err := values.read(prop.Type)
		if err != nil {
			return nil, err
		}
		return []float64{v}, nil
	}

	n, err := values.read(prop.ListType)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("negative list length for %s", prop.Name)
	}
	list := make([]float64, int(n))
	for i := range list {
		if list[i], err = values.read(prop.DataType); err != nil {
			return nil, err
		}
	}
	return list, nil
}

type asciiValueReader struct {
	scanner *bufio.Scanner
}

func (r *asciiValueReader) read(string) (float64, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.ParseFloat(r.scanner.Text(), 64)
}

type binaryValueReader struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (r *binaryValueReader) read(dataType string) (float64, error) {
	size := getTypeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("unsupported data type: %s", dataType)
	}
	b := r.buf[:size]
	if _, err := io.ReadFull(r.r, b); err != nil {
		return 0, err
	}

	switch dataType {
	case "char", "int8":
		return float64(int8(b[0])), nil
	case "uchar", "uint8":
		return float64(b[0]), nil
	case "short", "int16":
		return float64(int16(r.order.Uint16(b))), nil
	case "ushort", "uint16":
		return float64(r.order.Uint16(b)), nil
	case "int", "int32":
		return float64(int32(r.order.Uint32(b))), nil
	case "uint", "uint32":
		return float64(r.order.Uint32(b)), nil
	case "float", "float32":
		return float64(math.Float32frombits(r.order.Uint32(b))), nil
	default:
		return math.Float64frombits(r.order.Uint64(b)), nil
	}
}

// getTypeSize returns the size in bytes of a PLY data type, 0 if unknown
func getTypeSize(dataType string) int {
	switch dataType {
	case "char", "int8", "uchar", "uint8":
		return 1
	case "short", "int16", "ushort", "uint16":
		return 2
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	default:
		return 0
	}
}

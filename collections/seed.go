package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"orcaeletricista/models"
)

// ── Definition structs ───────────────────────────────────────────────────

type serviceDef struct {
	code        string
	category    models.ServiceCategory
	description string
	minPrice    float64
	maxPrice    float64
	avgPrice    float64
}

type materialDef struct {
	code        string
	description string
	unit        string
	price       float64
}

// serviceDefs is the 2025 labor price table, in display order.
var serviceDefs = []serviceDef{
	// iluminacao
	{"i1", models.CategoryIluminacao, "Instalação de Interruptor Simples ou Pulsador", 45, 65, 55},
	{"i2", models.CategoryIluminacao, "Instalação de Interruptor Tree-Way ou Four Way", 55, 75, 65},
	{"i3", models.CategoryIluminacao, "Instalação de Interruptor Duplo ou Bipolar", 55, 75, 65},
	{"i4", models.CategoryIluminacao, "Instalação de Interruptor e Tomada (Juntos)", 55, 75, 65},
	{"i5", models.CategoryIluminacao, "Instalação de Arandela, Pendente ou Spot Comum", 60, 90, 75},
	{"i6", models.CategoryIluminacao, "Instalação de Lâmpada Fluorescente ou LED (Tubular)", 65, 85, 75},
	{"i7", models.CategoryIluminacao, "Instalação de Lustres Simples ou Luminária", 85, 110, 97.5},
	{"i8", models.CategoryIluminacao, "Instalação de Lustres Grandes ou Luminária", 130, 160, 145},
	{"i9", models.CategoryIluminacao, "Instalação de Refletor de Jardim", 95, 125, 110},
	{"i10", models.CategoryIluminacao, "Instalação de Refletor LED + Fotocélula ou Sensor", 65, 105, 85},
	{"i11", models.CategoryIluminacao, "Instalação de Perfil de LED (Metro Linear)", 150, 190, 170},

	// ponto utilizacao
	{"p1", models.CategoryPontoUtilizacao, "Instalação de Tomada Simples", 35, 55, 45},
	{"p2", models.CategoryPontoUtilizacao, "Instalação de Tomada Dupla", 45, 65, 55},
	{"p3", models.CategoryPontoUtilizacao, "Instalação de Tomada Tripla", 55, 75, 65},
	{"p4", models.CategoryPontoUtilizacao, "Instalação de Tomada Industrial (3P+T)", 85, 125, 105},
	{"p5", models.CategoryPontoUtilizacao, "Instalação de Ventilador de Teto", 130, 170, 150},
	{"p6", models.CategoryPontoUtilizacao, "Instalação de Chuveiro Elétrico Simples", 85, 105, 95},
	{"p7", models.CategoryPontoUtilizacao, "Instalação de Chuveiro Luxo (Eletrônico/Pressurizado)", 130, 160, 145},
	{"p8", models.CategoryPontoUtilizacao, "Instalação de Interfone 1 Chamada", 140, 210, 175},
	{"p9", models.CategoryPontoUtilizacao, "Instalação de Video Porteiro", 170, 210, 190},
	{"p10", models.CategoryPontoUtilizacao, "Instalação de Portão Eletrônico Deslizante", 250, 290, 270},

	// quadros distribuicao
	{"q1", models.CategoryQuadrosDistribuicao, "Substituição de Disjuntor Monofásico", 45, 65, 55},
	{"q2", models.CategoryQuadrosDistribuicao, "Instalação de IDR", 120, 160, 140},
	{"q3", models.CategoryQuadrosDistribuicao, "Instalação de DPS", 105, 135, 120},
	{"q4", models.CategoryQuadrosDistribuicao, "Montagem QDC (6 Circuitos + DR + DPS)", 495, 545, 520},
	{"q5", models.CategoryQuadrosDistribuicao, "Montagem QDC (12 Circuitos + DR + DPS)", 750, 800, 775},
	{"q6", models.CategoryQuadrosDistribuicao, "Montagem QDC (24 Circuitos + DR + DPS)", 1260, 1320, 1290},

	// passagem cabos
	{"c1", models.CategoryPassagemCabos, "Entrada Monofásica (QM para QDC)", 170, 230, 200},
	{"c2", models.CategoryPassagemCabos, "Entrada Bifásica ou Trifásica (QM para QDC)", 230, 300, 265},
	{"c3", models.CategoryPassagemCabos, "Alimentação para Motores", 160, 220, 190},

	// solucao problemas
	{"s1", models.CategorySolucaoProblemas, "Curto Circuito Monofásico", 130, 190, 160},
	{"s2", models.CategorySolucaoProblemas, "Curto Circuito Bifásico", 160, 220, 190},
	{"s3", models.CategorySolucaoProblemas, "Curto Circuito Trifásico", 185, 255, 220},

	// padrao entrada
	{"e1", models.CategoryPadraoEntrada, "Instalação de Medidor Monofásico 127/220V", 1080, 1700, 1390},
	{"e2", models.CategoryPadraoEntrada, "Instalação de Medidor Bifásico 220V", 1290, 1940, 1615},
	{"e3", models.CategoryPadraoEntrada, "Instalação de Medidor Trifásico 220V", 1500, 2150, 1825},

	// carregador veicular
	{"v1", models.CategoryCarregadorVeicular, "Instalação de Carregador Veicular (Residencial Simples)", 800, 1200, 1000},

	// automacao residencial
	{"a1", models.CategoryAutomacaoResidencial, "Instalação de Interruptor Inteligente", 110, 270, 190},
	{"a2", models.CategoryAutomacaoResidencial, "Instalação Mini Relé Interruptor", 160, 270, 215},
	{"a3", models.CategoryAutomacaoResidencial, "Configuração Assistente Virtual", 110, 210, 160},
	{"a4", models.CategoryAutomacaoResidencial, "Instalação Fechadura Inteligente", 210, 370, 290},
}

var materialDefs = []materialDef{
	{"m1", "Cabo Flexível 1,5mm² - Preto", "m", 2.50},
	{"m2", "Cabo Flexível 1,5mm² - Azul", "m", 2.50},
	{"m3", "Cabo Flexível 2,5mm² - Preto", "m", 3.80},
	{"m4", "Cabo Flexível 2,5mm² - Azul", "m", 3.80},
	{"m5", "Cabo Flexível 4,0mm² - Preto", "m", 6.20},
	{"m6", "Cabo Flexível 6,0mm² - Preto", "m", 9.50},
	{"m7", "Disjuntor Monofásico DIN 10A", "un", 12.00},
	{"m8", "Disjuntor Monofásico DIN 16A", "un", 12.00},
	{"m9", "Disjuntor Monofásico DIN 20A", "un", 12.00},
	{"m10", "Disjuntor Bifásico DIN 32A", "un", 45.00},
	{"m11", "Disjuntor Bifásico DIN 40A", "un", 45.00},
	{"m12", "Tomada 10A 4x2 Completa - Branca", "un", 15.00},
	{"m13", "Tomada 20A 4x2 Completa - Branca", "un", 18.00},
	{"m14", "Interruptor Simples 4x2 Completo", "un", 14.00},
	{"m15", "Interruptor Duplo 4x2 Completo", "un", 22.00},
	{"m16", "Fita Isolante 20m - Profissional", "rolo", 18.00},
	{"m17", "Eletroduto Flexível Corrugado 3/4 (25mm)", "m", 2.20},
	{"m18", "Caixa de Passagem 4x2 PVC", "un", 3.50},
	{"m19", "Quadro de Distribuição 12/16 Disjuntores", "un", 85.00},
	{"m20", "DPS 20kA 275V", "un", 45.00},
	{"m21", "DR Bipolar 40A 30mA", "un", 120.00},
}

// Seed populates the reference price tables. It is safe to call on every
// startup because each table is only filled when it is empty.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip tables that already have rows ──────────────
	servicesCol, err := app.FindCollectionByNameOrId(ServiceDefinitionsCollection)
	if err != nil {
		return fmt.Errorf("seed: could not find %s collection: %w", ServiceDefinitionsCollection, err)
	}
	materialsCol, err := app.FindCollectionByNameOrId(MaterialDefinitionsCollection)
	if err != nil {
		return fmt.Errorf("seed: could not find %s collection: %w", MaterialDefinitionsCollection, err)
	}

	existingServices, err := app.FindAllRecords(servicesCol)
	if err != nil {
		return fmt.Errorf("seed: could not query services: %w", err)
	}
	if len(existingServices) == 0 {
		log.Println("seed: service_definitions is empty – inserting price table …")
		for i, d := range serviceDefs {
			r := core.NewRecord(servicesCol)
			r.Set("code", d.code)
			r.Set("sort_order", i+1)
			r.Set("category", string(d.category))
			r.Set("description", d.description)
			r.Set("min_price", d.minPrice)
			r.Set("max_price", d.maxPrice)
			r.Set("avg_price", d.avgPrice)
			if err := app.Save(r); err != nil {
				return fmt.Errorf("seed: service %s: %w", d.code, err)
			}
		}
	}

	existingMaterials, err := app.FindAllRecords(materialsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query materials: %w", err)
	}
	if len(existingMaterials) == 0 {
		log.Println("seed: material_definitions is empty – inserting price table …")
		for i, d := range materialDefs {
			r := core.NewRecord(materialsCol)
			r.Set("code", d.code)
			r.Set("sort_order", i+1)
			r.Set("description", d.description)
			r.Set("unit", d.unit)
			r.Set("price", d.price)
			if err := app.Save(r); err != nil {
				return fmt.Errorf("seed: material %s: %w", d.code, err)
			}
		}
	}

	return nil
}
